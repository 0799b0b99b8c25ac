package chat

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

// Turner produces the assistant reply for a turn. *Pipeline implements it.
type Turner interface {
	SendTurn(ctx context.Context, transcript []types.TranscriptEntry, text string) (string, error)
}

// Session owns one visitor's transcript. At most one turn is in flight at a
// time; a concurrent Send fails with ErrTurnInFlight without reaching the model.
type Session struct {
	ID        string
	CreatedAt time.Time

	turner  Turner
	metrics *observability.Metrics

	typing atomic.Bool

	mu         sync.Mutex
	transcript []types.TranscriptEntry
	generation uint64
}

// NewSession returns an empty session.
func NewSession(id string, turner Turner, metrics *observability.Metrics) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		turner:    turner,
		metrics:   metrics,
	}
}

// Send appends the trimmed user turn, waits for the reply and appends it.
// The returned transcript snapshot includes both turns. When ctx is
// cancelled the user turn is withdrawn so roles keep alternating, and
// ctx.Err() is returned.
func (s *Session) Send(ctx context.Context, text string) (string, []types.TranscriptEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, &ValidationError{Field: "text", Message: "message text is required"}
	}

	if !s.typing.CompareAndSwap(false, true) {
		s.metrics.IncChatTurnRejected()
		return "", nil, ErrTurnInFlight
	}
	defer s.typing.Store(false)

	s.mu.Lock()
	history := slices.Clone(s.transcript)
	s.transcript = append(s.transcript, types.TranscriptEntry{Role: types.RoleUser, Text: text})
	generation := s.generation
	s.mu.Unlock()

	reply, err := s.turner.SendTurn(ctx, history, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.generation == generation {
			s.transcript = s.transcript[:len(s.transcript)-1]
		}
		return "", slices.Clone(s.transcript), err
	}
	// A Reset while the call was in flight discards the late reply.
	if s.generation == generation {
		s.transcript = append(s.transcript, types.TranscriptEntry{Role: types.RoleAssistant, Text: reply})
	}
	return reply, slices.Clone(s.transcript), nil
}

// Typing reports whether a turn is awaiting its reply.
func (s *Session) Typing() bool {
	return s.typing.Load()
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []types.TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transcript)
}

// Reset clears the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	s.generation++
}
