package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/ecs/debugui"
	"github.com/plus3/flappybird/flappy"
)

// InputSystem turns a press of Key into a jump, unless ImGui has the keyboard.
type InputSystem struct {
	Input ecs.Singleton[flappy.Input]
	Imgui ecs.Singleton[debugui.ImguiInputState]

	Key         ebiten.Key
	JustPressed func(ebiten.Key) bool
}

// NewInputSystem returns an InputSystem bound to Space.
func NewInputSystem() *InputSystem {
	return &InputSystem{Key: ebiten.KeySpace}
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	if state := s.Imgui.Get(); state != nil && state.WantCaptureKeyboard {
		return
	}

	justPressed := s.JustPressed
	if justPressed == nil {
		justPressed = inpututil.IsKeyJustPressed
	}
	if justPressed(s.Key) {
		input.Jump = true
	}
}
