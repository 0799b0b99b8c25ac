package chat

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blkdmnd/visual-thesis/internal/observability"
)

// DefaultStoreSize bounds the number of live chat sessions.
const DefaultStoreSize = 1024

// Store keeps the most recently used sessions in memory. Evicted sessions are reset.
type Store struct {
	turner   Turner
	metrics  *observability.Metrics
	sessions *lru.Cache[string, *Session]
}

// NewStore creates a session store holding at most size sessions.
func NewStore(turner Turner, size int, metrics *observability.Metrics) (*Store, error) {
	if size <= 0 {
		size = DefaultStoreSize
	}

	sessions, err := lru.NewWithEvict(size, func(_ string, s *Session) {
		s.Reset()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Store{turner: turner, metrics: metrics, sessions: sessions}, nil
}

// Open starts a new empty session.
func (st *Store) Open() *Session {
	s := NewSession(uuid.NewString(), st.turner, st.metrics)
	st.sessions.Add(s.ID, s)
	return s
}

// Get returns a live session.
func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close resets and forgets a session.
func (st *Store) Close(id string) error {
	s, ok := st.sessions.Peek(id)
	if !ok {
		return ErrSessionNotFound
	}
	s.Reset()
	st.sessions.Remove(id)
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	return st.sessions.Len()
}
