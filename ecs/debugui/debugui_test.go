package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/flappybird/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y float32
}

type Health struct {
	Current int
	Max     uint16
}

type Tag struct {
	Name  string
	Alive bool
	Inner struct {
		Weight float64
	}
	Next *Position
}

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Tag](registry)
	RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	a, b, c := ecs.NewEntityId(1, 0), ecs.NewEntityId(1, 1), ecs.NewEntityId(2, 0)

	s.Select(a)
	assert.Equal(t, []ecs.EntityId{a}, s.IDs())

	s.Toggle(b)
	s.Toggle(c)
	assert.Equal(t, []ecs.EntityId{a, b, c}, s.IDs())
	assert.True(t, s.Contains(b))

	s.Toggle(b)
	assert.False(t, s.Contains(b))
	assert.Equal(t, []ecs.EntityId{a, c}, s.IDs())

	s.Select(b)
	assert.Equal(t, []ecs.EntityId{b}, s.IDs())
	assert.False(t, s.Contains(a))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionPrune(t *testing.T) {
	storage := newTestStorage()
	keep := storage.Spawn(Position{})
	gone := storage.Spawn(Position{X: 1})

	s := NewSelection()
	s.Toggle(keep)
	s.Toggle(gone)
	storage.Delete(gone)

	s.Prune(storage)
	assert.Equal(t, []ecs.EntityId{keep}, s.IDs())
}

func TestSetField(t *testing.T) {
	tag := &Tag{Next: &Position{}}

	assert.True(t, SetField(tag, []int{0}, "bird"))
	assert.True(t, SetField(tag, []int{1}, true))
	assert.True(t, SetField(tag, []int{2, 0}, float32(2.5)))
	assert.True(t, SetField(tag, []int{3, 1}, float32(7)))

	assert.Equal(t, "bird", tag.Name)
	assert.True(t, tag.Alive)
	assert.Equal(t, 2.5, tag.Inner.Weight)
	assert.Equal(t, float32(7), tag.Next.Y)

	assert.False(t, SetField(tag, []int{9}, 1), "out of range")
	assert.False(t, SetField(tag, []int{1}, struct{}{}), "not convertible")
	assert.False(t, SetField(*tag, []int{0}, "x"), "not a pointer")

	tag.Next = nil
	assert.False(t, SetField(tag, []int{3, 0}, float32(1)), "nil pointer on path")

	health := &Health{}
	assert.True(t, SetField(health, []int{1}, uint64(300)))
	assert.Equal(t, uint16(300), health.Max)

	n := 3
	assert.True(t, SetField(&n, nil, int64(5)))
	assert.Equal(t, 5, n)
}

func TestApplyToEntities(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Position{X: 1}, Health{Current: 5})
	b := storage.Spawn(Position{X: 2})
	c := storage.Spawn(Health{Current: 9})

	positionType := reflect.TypeFor[Position]()
	changed := ApplyToEntities(storage, []ecs.EntityId{a, b, c}, positionType, []int{1}, float32(42))
	assert.Equal(t, 2, changed, "entity without the component is skipped")

	assert.Equal(t, Position{X: 1, Y: 42}, *ecs.ReadComponent[Position](storage, a))
	assert.Equal(t, Position{X: 2, Y: 42}, *ecs.ReadComponent[Position](storage, b))
	assert.Equal(t, Health{Current: 9}, *ecs.ReadComponent[Health](storage, c))
}

func TestSharedComponentTypes(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Position{}, Health{}, Tag{})
	b := storage.Spawn(Position{}, Health{})
	c := storage.Spawn(Tag{}, Position{})

	assert.Equal(t,
		[]reflect.Type{reflect.TypeFor[Health](), reflect.TypeFor[Position]()},
		SharedComponentTypes(storage, []ecs.EntityId{a, b}))
	assert.Equal(t,
		[]reflect.Type{reflect.TypeFor[Position]()},
		SharedComponentTypes(storage, []ecs.EntityId{a, b, c}))
	assert.Len(t, SharedComponentTypes(storage, []ecs.EntityId{a}), 3)
	assert.Empty(t, SharedComponentTypes(storage, nil))
	assert.Empty(t, SharedComponentTypes(storage, []ecs.EntityId{a, ecs.NewEntityId(12345, 0)}))
}

func TestListEntities(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Position{}, Health{})
	b := storage.Spawn(Tag{})

	assert.Equal(t, "Health, Position", EntityLabel(storage, a))
	assert.Equal(t, "Tag", EntityLabel(storage, b))

	rows := ListEntities(storage, "")
	require.Len(t, rows, 2)

	rows = ListEntities(storage, "HEALTH")
	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].ID)

	assert.Empty(t, ListEntities(storage, "nothing"))
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())
	assert.Empty(t, h.Samples())

	h.Push(0.010)
	h.Push(0.020)
	assert.InDelta(t, 15, h.Average(), 1e-4)
	assert.InDeltaSlice(t, []float32{10, 20}, h.Samples(), 1e-4)

	h.Push(0.030)
	h.Push(0.040)
	assert.InDeltaSlice(t, []float32{20, 30, 40}, h.Samples(), 1e-4)
	assert.InDelta(t, 30, h.Average(), 1e-4)
}

func TestSpawnInspector(t *testing.T) {
	storage := newTestStorage()
	inspector := SpawnInspector(storage, ecs.NewScheduler(storage))
	require.NotNil(t, inspector)

	items := ecs.NewQuery[struct{ *ImguiItem }](storage)
	assert.Equal(t, 1, items.Count())

	var toggle *OverlayToggle
	require.True(t, storage.ReadSingleton(&toggle))
	assert.True(t, toggle.Visible, "overlay starts visible")

	var input *ImguiInputState
	assert.True(t, storage.ReadSingleton(&input))
}

func TestImguiSystemHiddenOverlay(t *testing.T) {
	storage := newTestStorage()
	rendered := 0
	storage.Spawn(ImguiItem{Render: func() { rendered++ }})
	ecs.NewSingleton[OverlayToggle](storage, OverlayToggle{Visible: false})
	ecs.NewSingleton[ImguiInputState](storage, ImguiInputState{WantCaptureKeyboard: true, WantCaptureMouse: true})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	scheduler.Once(0)

	assert.Equal(t, 0, rendered)
	var input *ImguiInputState
	require.True(t, storage.ReadSingleton(&input))
	assert.Equal(t, ImguiInputState{}, *input, "hidden overlay captures no input")
}
