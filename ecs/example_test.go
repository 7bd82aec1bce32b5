package ecs_test

import (
	"fmt"

	"github.com/plus3/flappybird/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type WorldClock struct {
	Ticks int
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*Speed
	}]
	Clock ecs.Singleton[WorldClock]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
	s.Clock.Get().Ticks++
}

// ExampleScheduler builds a world, registers a system with a Query and a
// Singleton field, and ticks it twice.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[WorldClock](storage)
	id := storage.Spawn(Transform{X: 0, Y: 100}, Speed{DX: 10, DY: -5})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{})

	scheduler.Once(1.0)
	scheduler.Once(0.5)

	pos := ecs.ReadComponent[Transform](storage, id)
	var clock *WorldClock
	storage.ReadSingleton(&clock)
	fmt.Printf("position (%.1f, %.1f) after %d ticks\n", pos.X, pos.Y, clock.Ticks)

	// Output:
	// position (15.0, 92.5) after 2 ticks
}

// ExampleNewSingleton shows that every accessor of a type refers to the same value.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	clock := ecs.NewSingleton[WorldClock](storage, WorldClock{Ticks: 3})
	clock.Get().Ticks++

	again := ecs.NewSingleton[WorldClock](storage, WorldClock{Ticks: 100})
	fmt.Println(again.Get().Ticks)

	// Output:
	// 4
}
