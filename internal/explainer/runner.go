package explainer

import (
	"sync"
)

// Observer receives runner notifications. Callbacks are delivered in event
// order, one at a time, outside the runner's state lock. A callback must not
// call back into the Runner synchronously.
type Observer struct {
	OnChange   func(State)
	OnComplete func()
}

// Runner drives a Sequencer with one timer at a time. The previous timer is
// always stopped before another is scheduled and when the runner stops.
type Runner struct {
	clock    Clock
	observer Observer

	mu      sync.Mutex
	seq     *Sequencer
	timer   Timer
	gen     uint64
	started bool
	stopped bool

	emitMu sync.Mutex

	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner wraps seq. A nil clock means RealClock.
func NewRunner(seq *Sequencer, clock Clock, observer Observer) *Runner {
	if clock == nil {
		clock = RealClock()
	}
	return &Runner{
		clock:    clock,
		observer: observer,
		seq:      seq,
		done:     make(chan struct{}),
	}
}

// Start publishes the initial state and schedules the first tick.
// Calls after the first are ignored.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.started = true
	st := r.seq.State()
	r.schedule()
	r.emit(st, false)
}

// Skip moves to the next phase, completing on the last one.
func (r *Runner) Skip() {
	r.apply(r.seq.Skip)
}

// Complete ends the walkthrough now.
func (r *Runner) Complete() {
	r.apply(r.seq.Complete)
}

// Stop cancels the pending timer without completing. It is safe to call
// more than once and after completion.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	r.cancelTimer()
	r.finish()
}

// Done is closed once the walkthrough completes or the runner stops.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// State returns the current snapshot.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq.State()
}

func (r *Runner) apply(event func() (State, bool)) {
	r.mu.Lock()
	if r.stopped || !r.started {
		r.mu.Unlock()
		return
	}
	st, completed := event()
	r.reschedule(completed)
	r.emit(st, completed)
}

// fire handles a timer callback scheduled for generation gen.
func (r *Runner) fire(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	st, completed := r.seq.Tick()
	r.reschedule(completed)
	r.emit(st, completed)
}

// reschedule replaces the pending timer after an event. Requires r.mu.
func (r *Runner) reschedule(completed bool) {
	r.cancelTimer()
	if completed || r.seq.Done() {
		r.stopped = true
		r.finish()
		return
	}
	r.schedule()
}

// schedule arms the next tick. Requires r.mu and no pending timer.
func (r *Runner) schedule() {
	r.gen++
	gen := r.gen
	r.timer = r.clock.AfterFunc(r.seq.interval, func() { r.fire(gen) })
}

// cancelTimer stops the pending timer. Requires r.mu.
func (r *Runner) cancelTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
}

func (r *Runner) finish() {
	r.doneOnce.Do(func() { close(r.done) })
}

// emit hands the notification lock over from r.mu so that callbacks run in
// event order without holding the state lock. Requires r.mu; releases it.
func (r *Runner) emit(st State, completed bool) {
	r.emitMu.Lock()
	r.mu.Unlock()
	defer r.emitMu.Unlock()

	if r.observer.OnChange != nil {
		r.observer.OnChange(st)
	}
	if completed && r.observer.OnComplete != nil {
		r.observer.OnComplete()
	}
}
