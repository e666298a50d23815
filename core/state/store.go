// Package state keeps per-conversation values in memory and serialises access per key.
// It is domain-agnostic: the value type is supplied by the bot.
package state

import (
	"sort"
	"sync"
)

type entry[T any] struct {
	mu  sync.Mutex
	val T
}

// Store maps a conversation key to a value of type T. Values are created lazily
// from the zero value of T and live for the lifetime of the process.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[int64]*entry[T]
}

// NewStore constructs an empty in-memory Store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{entries: make(map[int64]*entry[T])}
}

func (s *Store[T]) getOrCreate(key int64) *entry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry[T]{}
		s.entries[key] = e
	}
	return e
}

// With runs fn with exclusive access to the value for key, creating it if needed.
// Calls for the same key never overlap; calls for different keys run in parallel.
// Mutations made through the pointer persist after fn returns; the pointer must not
// be retained.
func (s *Store[T]) With(key int64, fn func(v *T) error) error {
	e := s.getOrCreate(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.val)
}

// Get returns a copy of the value for key and whether it exists. It never creates entries.
func (s *Store[T]) Get(key int64) (T, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.val, true
}

// Len reports how many conversations have an entry.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Range calls fn with a copy of every value in ascending key order.
func (s *Store[T]) Range(fn func(key int64, v T)) {
	s.mu.Lock()
	keys := make([]int64, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.Unlock()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		if v, ok := s.Get(k); ok {
			fn(k, v)
		}
	}
}
