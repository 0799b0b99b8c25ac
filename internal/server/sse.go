package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/explainer"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(state explainer.State) {
	s.WriteEvent("complete", state) //nolint:errcheck
}

// stateQueue buffers runner notifications so the runner never blocks on a slow client.
type stateQueue struct {
	mu     sync.Mutex
	items  []queuedState
	notify chan struct{}
}

type queuedState struct {
	state    explainer.State
	complete bool
}

func newStateQueue() *stateQueue {
	return &stateQueue{notify: make(chan struct{}, 1)}
}

func (q *stateQueue) push(item queuedState) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *stateQueue) drain() []queuedState {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// handleExplainerStream streams walkthrough states until completion. The
// runner's timer is stopped when the client disconnects or the server shuts down.
func (s *Server) handleExplainerStream(w http.ResponseWriter, r *http.Request) {
	seq, err := explainer.NewSequencer(s.content.ExplainerPhases(), s.interval)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The stream outlives the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[explainer] could not clear write deadline: %v", err)
	}

	queue := newStateQueue()
	var last explainer.State
	runner := explainer.NewRunner(seq, s.clock, explainer.Observer{
		OnChange: func(st explainer.State) {
			last = st
			queue.push(queuedState{state: st})
		},
		OnComplete: func() {
			queue.push(queuedState{state: last, complete: true})
		},
	})
	defer runner.Stop()
	runner.Start()

	for {
		select {
		case <-queue.notify:
			for _, item := range queue.drain() {
				if item.complete {
					sse.WriteComplete(item.state)
					return
				}
				if err := sse.WriteEvent("state", item.state); err != nil {
					log.Printf("[explainer] client write failed: %v", err)
					return
				}
			}
		case <-r.Context().Done():
			log.Printf("[explainer] client disconnected")
			return
		case <-s.closing:
			sse.WriteError("server shutting down")
			return
		}
	}
}
