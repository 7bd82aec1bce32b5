package flappy

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/plus3/flappybird/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeView struct {
	ecs.EntityId
	*Transform
	*Obstacle
	*Sprite
}

type birdView struct {
	ecs.EntityId
	*Transform
	*Bird
	*Sprite
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func collect[T any](storage *ecs.Storage) []T {
	var out []T
	for item := range ecs.NewView[T](storage).Values() {
		out = append(out, item)
	}
	return out
}

func TestSetupLevelRequiresWindow(t *testing.T) {
	storage := newTestStorage()

	err := SetupLevel(storage, SetupOptions{Rand: testRand()})
	require.ErrorIs(t, err, ErrNoPrimaryWindow)

	storage.AddSingleton(PrimaryWindow{Width: 0, Height: 512})
	err = SetupLevel(storage, SetupOptions{Rand: testRand()})
	require.ErrorIs(t, err, ErrNoPrimaryWindow)

	assert.Equal(t, 0, storage.CollectStats().TotalEntityCount, "nothing spawned on failure")
}

func TestSetupLevelSpawnsLevel(t *testing.T) {
	storage := newTestStorage()
	storage.AddSingleton(PrimaryWindow{Title: WindowTitle, Width: 512, Height: 512})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(t, SetupLevel(storage, SetupOptions{Rand: testRand(), Logger: logger}))

	var manager *GameManager
	require.True(t, storage.ReadSingleton(&manager))
	assert.Equal(t, Vec2{X: 512, Y: 512}, manager.WindowDimensions)
	assert.Equal(t, PipeImage, manager.PipeImage)
	assert.False(t, manager.GameOver)

	var clear *ClearColor
	require.True(t, storage.ReadSingleton(&clear))
	assert.Equal(t, ClearColor{R: 0.5, G: 0.7, B: 0.8}, *clear)

	var settings *DebugSettings
	require.True(t, storage.ReadSingleton(&settings))
	assert.True(t, settings.ShowAxes)

	cameras := collect[struct{ *Camera2D }](storage)
	assert.Len(t, cameras, 1)

	birds := collect[birdView](storage)
	require.Len(t, birds, 1)
	bird := birds[0]
	assert.Equal(t, Vec3{}, bird.Translation)
	assert.Equal(t, Vec2{X: PixelRatio, Y: PixelRatio}, bird.Scale)
	assert.Equal(t, Bird{}, *bird.Bird)
	assert.Equal(t, BirdImage, bird.Image)

	pipes := collect[pipeView](storage)
	require.Len(t, pipes, 2*ObstacleAmount)

	tops := map[float32]pipeView{}
	bottoms := map[float32]pipeView{}
	for _, pipe := range pipes {
		assert.Equal(t, PipeImage, pipe.Image)
		assert.Equal(t, float32(PixelRatio), pipe.Scale.X)
		assert.Equal(t, PixelRatio*-pipe.PipeDirection, pipe.Scale.Y)
		if pipe.PipeDirection > 0 {
			tops[pipe.Translation.X] = pipe
		} else {
			bottoms[pipe.Translation.X] = pipe
		}
	}

	for i := range ObstacleAmount {
		x := float32(256 + i*ObstacleSpacing*PixelRatio)
		top, ok := tops[x]
		require.True(t, ok, "top pipe at x=%v", x)
		bottom, ok := bottoms[x]
		require.True(t, ok, "bottom pipe at x=%v", x)

		offset := top.Translation.Y - centeredPipePosition()
		assert.GreaterOrEqual(t, offset, float32(-ObstacleVerticalOffset*PixelRatio))
		assert.Less(t, offset, float32(ObstacleVerticalOffset*PixelRatio))
		assert.InDelta(t, -centeredPipePosition()+offset, bottom.Translation.Y, 1e-3, "pair shares its jitter")
	}

	assert.Contains(t, logs.String(), "Game setup complete")
	assert.Contains(t, logs.String(), "width=512")
}

func TestGenerateOffsetRange(t *testing.T) {
	r := testRand()
	for range 1000 {
		offset := generateOffset(r)
		assert.GreaterOrEqual(t, offset, float32(-120))
		assert.Less(t, offset, float32(120))
	}
}

func TestClearColorRGBA(t *testing.T) {
	c := ClearColor{R: 0.5, G: 0.7, B: 2}.RGBA()
	assert.Equal(t, uint8(127), c.R)
	assert.Equal(t, uint8(178), c.G)
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(255), c.A)
}
