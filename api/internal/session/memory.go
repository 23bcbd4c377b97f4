package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	state   State
	touched time.Time
}

// MemoryStore is a process-local Store. Any read or write refreshes a
// session; sessions idle for longer than ttl are treated as ended.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu sync.Mutex
	m  map[string]memEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, m: map[string]memEntry{}}
}

func (s *MemoryStore) Get(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(id)
	if _, ok := s.m[id]; ok {
		s.m[id] = memEntry{state: st, touched: s.now()}
	}
	return st.WithDetection(st.Detection), nil
}

func (s *MemoryStore) Put(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = memEntry{state: st.WithDetection(st.Detection), touched: s.now()}
	return nil
}

// Update applies fn to the current state under the store lock, so concurrent
// updates of different slots in one session never overwrite each other.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(State) State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := fn(s.load(id))
	st = st.WithDetection(st.Detection)
	s.m[id] = memEntry{state: st, touched: s.now()}
	return st.WithDetection(st.Detection), nil
}

// load returns the live state for id, dropping it if expired. Callers hold mu.
func (s *MemoryStore) load(id string) State {
	e, ok := s.m[id]
	if !ok {
		return State{}
	}
	if s.expired(e) {
		delete(s.m, id)
		return State{}
	}
	return e.state
}

// Sweep drops expired sessions and reports how many were removed.
func (s *MemoryStore) Sweep(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.m {
		if s.expired(e) {
			delete(s.m, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) expired(e memEntry) bool {
	return s.ttl > 0 && s.now().Sub(e.touched) > s.ttl
}

var _ Store = (*MemoryStore)(nil)
