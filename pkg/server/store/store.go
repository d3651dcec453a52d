/*
Copyright 2026 the Loonycorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package store is a thread-safe, in-memory store that remembers insertion
// order, so listings come back in creation order.
package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	newID func() string
}

// New creates an empty store that assigns random UUIDs.
func New[T any]() *Store[T] {
	return NewWithIDs[T](uuid.NewString)
}

// NewWithIDs creates an empty store that uses newID to assign identifiers.
func NewWithIDs[T any](newID func() string) *Store[T] {
	return &Store[T]{
		items: map[string]T{},
		newID: newID,
	}
}

// Create assigns an ID, lets build produce the item for it, then stores it.
func (s *Store[T]) Create(build func(id string) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	item := build(id)

	s.items[id] = item
	s.order = append(s.order, id)

	return item
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]

	return item, ok
}

// Update applies mutate to an existing item, the item keeps its position.
// It returns false if the ID is unknown.
func (s *Store[T]) Update(id string, mutate func(T) T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return item, false
	}

	item = mutate(item)
	s.items[id] = item

	return item, true
}

// Delete removes an item, returning false if it didn't exist.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}

	delete(s.items, id)

	s.order = slices.DeleteFunc(s.order, func(oid string) bool {
		return oid == id
	})

	return true
}

// List returns every item in insertion order, never nil.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.order))

	for _, id := range s.order {
		result = append(result, s.items[id])
	}

	return result
}

// Reset empties the store.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = map[string]T{}
	s.order = nil
}
