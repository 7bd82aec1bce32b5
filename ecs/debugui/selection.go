package debugui

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/flappybird/ecs"
)

// Selection is the set of entities picked in the hierarchy panel.
type Selection struct {
	members *intmap.Map[ecs.EntityId, struct{}]
	order   []ecs.EntityId
}

func NewSelection() *Selection {
	return &Selection{
		members: intmap.New[ecs.EntityId, struct{}](16),
	}
}

// Select replaces the selection with id.
func (s *Selection) Select(id ecs.EntityId) {
	s.Clear()
	s.add(id)
}

// Toggle adds id to the selection, or removes it if already selected.
func (s *Selection) Toggle(id ecs.EntityId) {
	if s.Contains(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

func (s *Selection) add(id ecs.EntityId) {
	s.members.Put(id, struct{}{})
	s.order = append(s.order, id)
}

func (s *Selection) remove(id ecs.EntityId) {
	s.members.Del(id)
	s.order = slices.DeleteFunc(s.order, func(other ecs.EntityId) bool { return other == id })
}

func (s *Selection) Contains(id ecs.EntityId) bool {
	return s.members.Has(id)
}

func (s *Selection) Len() int {
	return len(s.order)
}

func (s *Selection) Clear() {
	s.members.Clear()
	s.order = s.order[:0]
}

// IDs returns the selected entities in the order they were picked.
func (s *Selection) IDs() []ecs.EntityId {
	return slices.Clone(s.order)
}

// Prune drops entities that no longer exist in storage. Entities that moved
// archetype get a new ID and are dropped too.
func (s *Selection) Prune(storage *ecs.Storage) {
	for _, id := range s.IDs() {
		if !storage.Exists(id) {
			s.remove(id)
		}
	}
}
