package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"
)

// Storage owns every archetype and singleton of one ECS world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value // pointer to the stored value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world that uses registry for component storage.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns the archetype holding exactly the given component values' types, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// GetArchetypeById returns the archetype with the given ID, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns all archetypes ordered by ID.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *Archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components.
// Components may be values or pointers to values; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes the entity and all its components. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Exists reports whether id refers to a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Contains(id.Index())
}

// AddComponent moves the entity into the archetype that also contains the
// component's type and returns its new ID. Adding a type the entity already
// has replaces the value in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Contains(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if col := old.column(compType); col >= 0 {
		dst := reflect.ValueOf(old.storages[col].Get(int(id.Index()))).Elem()
		src := reflect.ValueOf(component)
		if src.Kind() == reflect.Pointer {
			src = src.Elem()
		}
		dst.Set(src)
		return id
	}

	types := append(slices.Clone(old.types), compType)
	sort.Sort(byTypeName(types))

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == compType {
			components = append(components, component)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	return s.move(id, old, types, components)
}

// RemoveComponent moves the entity into the archetype without compType and
// returns its new ID. Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Contains(id.Index()) || !old.HasComponent(compType) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	components := make([]any, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ == compType {
			continue
		}
		types = append(types, typ)
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}

	return s.move(id, old, types, components)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, components []any) EntityId {
	target := s.archetypeFor(types)
	index := target.Spawn(components)
	old.Delete(id.Index())
	return NewEntityId(target.id, index)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.HasComponent(compType)
}

// AddSingleton stores value as the world-wide instance of its type, replacing
// any previous instance. Pointers returned earlier by Singleton.Get stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// GetSingleton returns a pointer to the singleton of type t, or nil.
func (s *Storage) GetSingleton(t reflect.Type) any {
	entry := s.singletons[t]
	if entry == nil {
		return nil
	}
	return entry.value.Interface()
}

// SingletonTypes returns the types of all stored singletons ordered by name.
func (s *Storage) SingletonTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.singletons))
	for t := range s.singletons {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// ReadSingleton points *target at the stored singleton of type T.
// target must be a **T. Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.singletons[ptr.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value)
	return true
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		switch compType.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates an FNV-1a hash over the identities of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is implemented by anything that can look up an entity's components.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
