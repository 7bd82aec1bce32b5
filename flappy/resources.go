package flappy

import "image/color"

// GameManager is the shared game state.
type GameManager struct {
	PipeImage        ImageHandle
	WindowDimensions Vec2
	GameOver         bool
}

// PrimaryWindow describes the window the game is shown in. Frontends install
// it before SetupLevel runs.
type PrimaryWindow struct {
	Title  string
	Width  float32
	Height float32
}

// ClearColor is the background colour, channels in [0, 1].
type ClearColor struct {
	R, G, B float32
}

func (c ClearColor) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: 0xff,
	}
}

// Input holds the player's actions for the current tick.
type Input struct {
	Jump bool
}

// DebugSettings toggles frontend debug drawing.
type DebugSettings struct {
	ShowAxes bool
}
