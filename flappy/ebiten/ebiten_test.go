package ebiten

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/ecs/debugui"
	"github.com/plus3/flappybird/flappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportWorldToScreen(t *testing.T) {
	v := Viewport{Zoom: 1, Width: 512, Height: 512}

	x, y := v.WorldToScreen(0, 0)
	assert.Equal(t, 256.0, x)
	assert.Equal(t, 256.0, y)

	x, y = v.WorldToScreen(-256, 256)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y, "world y up is screen y down")

	v.CameraX, v.Zoom = 100, 2
	x, _ = v.WorldToScreen(110, 0)
	assert.Equal(t, 276.0, x)
}

func TestSpriteGeoM(t *testing.T) {
	v := Viewport{Zoom: 1, Width: 512, Height: 512}

	bird := flappy.NewTransform(0, 0, flappy.PixelRatio)
	g := SpriteGeoM(16, 16, bird, v)
	x, y := g.Apply(0, 0)
	assert.InDelta(t, 224, x, 1e-9, "top-left pixel lands up and left of centre")
	assert.InDelta(t, 224, y, 1e-9)
	x, y = g.Apply(16, 16)
	assert.InDelta(t, 288, x, 1e-9)
	assert.InDelta(t, 288, y, 1e-9)

	topPipe := flappy.Transform{
		Translation: flappy.Vec3{X: 100, Y: 300},
		Scale:       flappy.Vec2{X: flappy.PixelRatio, Y: -flappy.PixelRatio},
	}
	g = SpriteGeoM(18, 144, topPipe, v)
	_, yTop := g.Apply(0, 0)
	_, yBottom := g.Apply(0, 144)
	assert.Greater(t, yTop, yBottom, "negative y scale flips the pipe")
	assert.InDelta(t, 256-300+288, yTop, 1e-9)

	turned := flappy.NewTransform(0, 0, 1)
	turned.Rotation = math.Pi / 2
	g = SpriteGeoM(2, 2, turned, v)
	x, y = g.Apply(2, 1) // local (1, 0)
	assert.InDelta(t, 256, x, 1e-9)
	assert.InDelta(t, 255, y, 1e-9, "positive rotation is counter-clockwise")
}

func TestAxisTicks(t *testing.T) {
	ticks := AxisTicks(512, 50)
	require.Len(t, ticks, 11)
	assert.Equal(t, -256, ticks[0])
	assert.Equal(t, 244, ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.Equal(t, 50, ticks[i]-ticks[i-1])
	}

	assert.Equal(t, []int{-50, 0, 50}, AxisTicks(100, 50))
}

func TestImageCacheReportsFailureOnce(t *testing.T) {
	var logs bytes.Buffer
	cache := NewImageCache("assets", slog.New(slog.NewTextHandler(&logs, nil)))

	var loaded []string
	cache.load = func(path string) (*ebiten.Image, error) {
		loaded = append(loaded, path)
		return nil, errors.New("missing")
	}

	assert.Nil(t, cache.Get(flappy.BirdImage))
	assert.Nil(t, cache.Get(flappy.BirdImage))
	assert.Nil(t, cache.Get(""))

	assert.Len(t, loaded, 1)
	assert.True(t, strings.HasSuffix(loaded[0], "bird.png"))
	assert.Equal(t, 1, strings.Count(logs.String(), "failed to load image"))
}

func TestInputSystem(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	input := ecs.NewSingleton[flappy.Input](storage)
	imgui := ecs.NewSingleton[debugui.ImguiInputState](storage)

	pressed := map[ebiten.Key]bool{}
	system := NewInputSystem()
	system.JustPressed = func(key ebiten.Key) bool { return pressed[key] }

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(system)

	scheduler.Once(0)
	assert.False(t, input.Get().Jump)

	pressed[ebiten.KeySpace] = true
	imgui.Get().WantCaptureKeyboard = true
	scheduler.Once(0)
	assert.False(t, input.Get().Jump, "keyboard captured by the overlay")

	imgui.Get().WantCaptureKeyboard = false
	scheduler.Once(0)
	assert.True(t, input.Get().Jump)
}
