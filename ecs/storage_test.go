package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/flappybird/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{12345, 67890},
		{0xFFFFFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "bird"})
	require.True(t, storage.Exists(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "bird", name.Value)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnCopiesPointerComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	original := &Position{X: 1, Y: 1}
	id := storage.Spawn(original)
	original.X = 99

	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentPointerIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestSameComponentSetSharesArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.Len(t, storage.GetArchetypes(), 2)
	assert.Equal(t, 2, storage.GetArchetypeById(a.ArchetypeId()).Len())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(uint8(1)) }, "unregistered component")
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})

	storage.Delete(a)
	assert.False(t, storage.Exists(a))
	assert.True(t, storage.Exists(b))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))

	c := storage.Spawn(Position{X: 3})
	assert.Equal(t, a, c, "freed slot is reused")
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)

	storage.Delete(ecs.NewEntityId(0xDEAD, 7))
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 6})
	moved := storage.AddComponent(id, Velocity{DX: 1})
	require.NotEqual(t, id, moved)
	assert.False(t, storage.Exists(id))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, moved).X)
	assert.Equal(t, float32(1), ecs.ReadComponent[Velocity](storage, moved).DX)

	same := storage.AddComponent(moved, Velocity{DX: 2})
	assert.Equal(t, moved, same, "replacing an existing component keeps the entity in place")
	assert.Equal(t, float32(2), ecs.ReadComponent[Velocity](storage, same).DX)

	back := storage.RemoveComponent(same, reflect.TypeFor[Velocity]())
	assert.True(t, storage.HasComponent(back, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(back, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(6), ecs.ReadComponent[Position](storage, back).Y)

	gone := storage.RemoveComponent(back, reflect.TypeFor[Position]())
	assert.Equal(t, ecs.EntityId(0), gone)
	assert.False(t, storage.Exists(back))
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))
	assert.Nil(t, storage.GetSingleton(reflect.TypeFor[Health]()))

	storage.AddSingleton(Health{Current: 3, Max: 5})

	var health *Health
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, 3, health.Current)

	storage.AddSingleton(&Health{Current: 4, Max: 5})
	assert.Equal(t, 4, health.Current, "replacing a singleton keeps earlier pointers valid")

	assert.Equal(t, []reflect.Type{reflect.TypeFor[Health]()}, storage.SingletonTypes())

	storage.RemoveSingleton(reflect.TypeFor[Health]())
	assert.False(t, storage.ReadSingleton(&health))
}

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")
	ecs.NewSingleton[float64](storage, 3.14)
	ecs.NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	counts := make([]int, 0, len(stats.ArchetypeBreakdown))
	for _, arch := range stats.ArchetypeBreakdown {
		counts = append(counts, arch.EntityCount)
	}
	assert.ElementsMatch(t, []int{2, 1}, counts)
}
