// Package explainer drives the timed "how this site works" walkthrough:
// a pure phase/progress state machine and a timer-backed runner.
package explainer

import (
	"errors"
	"fmt"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

// TickInterval is the progress update period.
const TickInterval = 50 * time.Millisecond

// ErrNoPhases is returned when a sequencer is built without phases.
var ErrNoPhases = errors.New("explainer: at least one phase is required")

// State is a snapshot of the walkthrough.
type State struct {
	Index    int     `json:"index"`
	PhaseID  int     `json:"phase_id"`
	Title    string  `json:"title"`
	Total    int     `json:"total"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}

// Sequencer is the walkthrough state machine. Progress is derived from an
// integer count of elapsed ticks, so a phase of duration d advances after
// exactly ceil(d/interval) ticks. It is not safe for concurrent use.
type Sequencer struct {
	phases   []types.ExplainerPhase
	interval time.Duration

	index   int
	elapsed int
	done    bool
}

// NewSequencer returns a sequencer positioned at the start of the first phase.
func NewSequencer(phases []types.ExplainerPhase, interval time.Duration) (*Sequencer, error) {
	if len(phases) == 0 {
		return nil, ErrNoPhases
	}
	if interval <= 0 {
		return nil, fmt.Errorf("explainer: tick interval must be positive, got %s", interval)
	}
	for i, p := range phases {
		if p.DurationMS <= 0 {
			return nil, fmt.Errorf("explainer: phase %d (id %d) has non-positive duration", i, p.ID)
		}
	}

	return &Sequencer{
		phases:   append([]types.ExplainerPhase(nil), phases...),
		interval: interval,
	}, nil
}

func (s *Sequencer) duration() time.Duration {
	return time.Duration(s.phases[s.index].DurationMS) * time.Millisecond
}

// State returns the current snapshot.
func (s *Sequencer) State() State {
	phase := s.phases[s.index]
	st := State{
		Index:   s.index,
		PhaseID: phase.ID,
		Title:   phase.Title,
		Total:   len(s.phases),
		Done:    s.done,
	}
	if s.done {
		st.Progress = 100
		return st
	}
	st.Progress = min(100, float64(time.Duration(s.elapsed)*s.interval)*100/float64(s.duration()))
	return st
}

// Done reports whether the walkthrough has finished.
func (s *Sequencer) Done() bool {
	return s.done
}

// Tick advances time by one interval. When the current phase reaches 100%
// the next phase starts at 0%, or the walkthrough completes on the last phase.
// The second result is true only for the event that completed the walkthrough.
func (s *Sequencer) Tick() (State, bool) {
	if s.done {
		return s.State(), false
	}

	s.elapsed++
	if time.Duration(s.elapsed)*s.interval >= s.duration() {
		return s.next()
	}
	return s.State(), false
}

// Skip moves to the start of the next phase, completing on the last phase.
func (s *Sequencer) Skip() (State, bool) {
	if s.done {
		return s.State(), false
	}
	return s.next()
}

// Complete ends the walkthrough immediately.
func (s *Sequencer) Complete() (State, bool) {
	if s.done {
		return s.State(), false
	}
	s.done = true
	return s.State(), true
}

func (s *Sequencer) next() (State, bool) {
	if s.index == len(s.phases)-1 {
		return s.Complete()
	}
	s.index++
	s.elapsed = 0
	return s.State(), false
}
