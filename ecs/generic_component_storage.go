package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories.
// Every Storage owns one, so independent worlds never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T as a component type. Spawning an entity with
// an unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

// IsRegistered reports whether t has been registered with the registry.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components in fixed-size blocks so that pointers handed
// out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func (cs *blockStorage[T]) slot(index int) (int, int, bool) {
	if index < 0 {
		return 0, 0, false
	}
	b, s := index/blockSize, index%blockSize
	return b, s, b < len(cs.blocks)
}

// Append stores item (a T or *T) and returns its index, reusing freed slots first.
func (cs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	b, s := index/blockSize, index%blockSize
	cs.blocks[b][s] = value
	cs.filled[b][s] = true
	cs.live++
	return index
}

// Get returns a *T for the slot, or nil if the slot is empty.
func (cs *blockStorage[T]) Get(index int) any {
	b, s, ok := cs.slot(index)
	if !ok || !cs.filled[b][s] {
		return nil
	}
	return &cs.blocks[b][s]
}

// Delete zeroes the slot and makes it available for reuse.
func (cs *blockStorage[T]) Delete(index int) {
	b, s, ok := cs.slot(index)
	if !ok || !cs.filled[b][s] {
		return
	}
	var zero T
	cs.blocks[b][s] = zero
	cs.filled[b][s] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

func (cs *blockStorage[T]) Has(index int) bool {
	b, s, ok := cs.slot(index)
	return ok && cs.filled[b][s]
}

func (cs *blockStorage[T]) Len() int {
	return cs.live
}

func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
