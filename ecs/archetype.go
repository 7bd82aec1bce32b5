package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly one particular set of component types.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
}

// NewArchetype creates an archetype for the given sorted component types.
// Panics if a type has not been registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Spawn appends one entity. components must hold exactly one value per type of
// the archetype; the returned index is shared by every column.
func (a *Archetype) Spawn(components []any) uint32 {
	var index int
	for _, comp := range components {
		if col := a.column(componentType(comp)); col >= 0 {
			index = a.storages[col].Append(comp)
		}
	}
	return uint32(index)
}

// GetComponent returns a pointer to the component of compType for the entity, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.column(compType)
	if col < 0 {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

// Delete frees the entity's slot in every column. Indices of other entities are unchanged.
func (a *Archetype) Delete(entityIndex uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// Contains reports whether the entity index is live in this archetype.
func (a *Archetype) Contains(entityIndex uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(entityIndex))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) >= 0
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// String lists the component type names, e.g. "flappy.Bird, flappy.Sprite".
func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Iter yields the EntityId of every live entity in this archetype.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
