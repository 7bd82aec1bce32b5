package debugui

import "github.com/plus3/flappybird/ecs"

// SpawnInspector adds an Inspector to storage as an ImguiItem and installs a
// visible OverlayToggle if none exists.
func SpawnInspector(storage *ecs.Storage, scheduler *ecs.Scheduler) *Inspector {
	inspector := NewInspector(storage, scheduler)
	storage.Spawn(ImguiItem{Render: inspector.Render})
	ecs.NewSingleton[OverlayToggle](storage, OverlayToggle{Visible: true})
	ecs.NewSingleton[ImguiInputState](storage)
	return inspector
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
