package storage

import "sync"

// MemoryStore is a Storer backed by a map guarded by a RWMutex.
type MemoryStore[T any] struct {
	records map[string]T

	mu sync.RWMutex
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]T{}}
}

func (s *MemoryStore[T]) Save(id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = v
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

func (s *MemoryStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// replace swaps the full record set in one step.
func (s *MemoryStore[T]) replace(records map[string]T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
}
