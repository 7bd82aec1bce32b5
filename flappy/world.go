package flappy

import (
	"github.com/plus3/flappybird/ecs"
)

// RegisterComponents registers every gameplay component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Camera2D](registry)
	ecs.RegisterComponent[Bird](registry)
	ecs.RegisterComponent[Obstacle](registry)
}

// Options configures NewWorld.
type Options struct {
	Window PrimaryWindow
	Setup  SetupOptions

	// Registry receives the gameplay components. Callers that add their own
	// component types pass a registry they have already filled.
	Registry *ecs.ComponentRegistry

	// Before and After are registered around the gameplay systems, in order.
	Before []ecs.System
	After  []ecs.System
}

// World is a level ready to tick.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Bird      *BirdSystem
	Obstacles *ObstacleSystem

	input *ecs.Singleton[Input]
}

// NewWorld builds the storage, installs the window, sets up the level and
// registers the systems: Before, BirdSystem, ObstacleSystem, After.
func NewWorld(opts Options) (*World, error) {
	opts.Setup = opts.Setup.withDefaults()

	registry := opts.Registry
	if registry == nil {
		registry = ecs.NewComponentRegistry()
	}
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	if opts.Window.Title == "" {
		opts.Window.Title = WindowTitle
	}
	storage.AddSingleton(opts.Window)

	if err := SetupLevel(storage, opts.Setup); err != nil {
		return nil, err
	}

	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Bird:      &BirdSystem{Logger: opts.Setup.Logger},
		Obstacles: &ObstacleSystem{Rand: opts.Setup.Rand},
		input:     ecs.NewSingleton[Input](storage),
	}

	for _, system := range opts.Before {
		w.Scheduler.Register(system)
	}
	w.Scheduler.Register(w.Bird)
	w.Scheduler.Register(w.Obstacles)
	for _, system := range opts.After {
		w.Scheduler.Register(system)
	}

	return w, nil
}

// Flap queues a flap for the next Step.
func (w *World) Flap() {
	w.input.Get().Jump = true
}

// Step advances the world by dt seconds and clears the tick's input.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
	w.input.Get().Jump = false
}

// GameOver reports whether the bird has died.
func (w *World) GameOver() bool {
	var manager *GameManager
	return w.Storage.ReadSingleton(&manager) && manager.GameOver
}
