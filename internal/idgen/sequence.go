package idgen

import "sync"

// Sequence hands out strictly increasing int64 ids starting after a floor.
// Unlike time-derived ids, two calls in the same clock tick never collide.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

// NewSequence creates a Sequence whose first id is floor+1.
func NewSequence(floor int64) *Sequence {
	return &Sequence{last: floor}
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Observe raises the floor so ids already in use (e.g. seeded ones) are never handed out.
func (s *Sequence) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
