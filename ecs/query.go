package ecs

import (
	"iter"
)

// Query is a View that remembers which archetypes match, rechecking only when
// the set of archetypes in the storage changes. Systems declare Query fields
// and the Scheduler initialises them.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached archetypes.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if q.storage == nil {
		panic("Query used before Init")
	}

	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.GetArchetypes() {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}
	return q.cachedArchetypes
}

// Iter yields every matching entity and its populated view struct.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes() {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Single returns the only matching entity. ok is false when there are zero
// or several matches.
func (q *Query[T]) Single() (id EntityId, item T, ok bool) {
	count := 0
	for entityId, value := range q.Iter() {
		count++
		if count > 1 {
			var zero T
			return 0, zero, false
		}
		id, item = entityId, value
	}
	return id, item, count == 1
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
