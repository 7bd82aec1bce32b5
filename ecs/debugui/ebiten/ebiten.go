// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// ToggleSystem flips the OverlayToggle singleton when Key is pressed.
type ToggleSystem struct {
	Toggle ecs.Singleton[debugui.OverlayToggle]

	Key ebiten.Key

	// JustPressed reports a key press edge. Defaults to inpututil.IsKeyJustPressed.
	JustPressed func(ebiten.Key) bool
}

// NewToggleSystem returns a ToggleSystem bound to Escape.
func NewToggleSystem() *ToggleSystem {
	return &ToggleSystem{Key: ebiten.KeyEscape}
}

func (s *ToggleSystem) Execute(frame *ecs.UpdateFrame) {
	justPressed := s.JustPressed
	if justPressed == nil {
		justPressed = inpututil.IsKeyJustPressed
	}
	if !justPressed(s.Key) {
		return
	}
	if toggle := s.Toggle.Get(); toggle != nil {
		toggle.Visible = !toggle.Visible
	}
}
