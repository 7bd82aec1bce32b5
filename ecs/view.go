package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct of component pointers.
//
// Each field of T is a pointer to a component type. Embedded fields are always
// required; named fields may be tagged `ecs:"optional"` and are nil when the
// entity lacks that component. A field of type EntityId (embedded or named)
// receives the matched entity's ID.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView builds a view for T. Panics if T is not a struct of component pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// matchesArchetype reports whether the archetype has every required component.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// columns maps each view field to its column in the archetype, -1 when absent.
func (v *View[T]) columns(archetype *Archetype) []int {
	cols := make([]int, len(v.types))
	for i, t := range v.types {
		cols[i] = archetype.column(t)
	}
	return cols
}

func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, index int, cols []int) bool {
	for i, col := range cols {
		fieldPtr := unsafe.Add(dst, v.fieldOffset[i])

		var component any
		if col >= 0 {
			component = archetype.storages[col].Get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = NewEntityId(archetype.id, uint32(index))
	}
	return true
}

// Fill populates ptr for the entity. Returns false if the entity does not
// exist or lacks a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id.Index()) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columns(archetype))
}

// Get returns the populated view for the entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.storages) == 0 {
		return true
	}

	cols := v.columns(archetype)
	var result T
	dst := unsafe.Pointer(&result)

	for index := range archetype.storages[0].Iter() {
		if !v.populate(dst, archetype, index, cols) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(index)), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity. Archetypes are visited in ID order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.GetArchetypes() {
			if !v.matchesArchetype(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the entity IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
