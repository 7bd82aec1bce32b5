package flappy

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/flappybird/ecs"
)

var ErrNoPrimaryWindow = errors.New("no primary window")

// SetupOptions configures SetupLevel. Zero values select the defaults.
type SetupOptions struct {
	Rand      *rand.Rand
	Logger    *slog.Logger
	BirdImage ImageHandle
	PipeImage ImageHandle
}

func (o SetupOptions) withDefaults() SetupOptions {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.BirdImage == "" {
		o.BirdImage = BirdImage
	}
	if o.PipeImage == "" {
		o.PipeImage = PipeImage
	}
	return o
}

// SetupLevel installs the game resources and spawns the camera, the bird and
// ObstacleAmount obstacle pairs. The PrimaryWindow singleton must already be
// present with a positive size.
func SetupLevel(storage *ecs.Storage, opts SetupOptions) error {
	opts = opts.withDefaults()

	var window *PrimaryWindow
	if !storage.ReadSingleton(&window) {
		return fmt.Errorf("setup level: %w", ErrNoPrimaryWindow)
	}
	if window.Width <= 0 || window.Height <= 0 {
		return fmt.Errorf("setup level: window size %vx%v: %w", window.Width, window.Height, ErrNoPrimaryWindow)
	}

	storage.AddSingleton(GameManager{
		PipeImage:        opts.PipeImage,
		WindowDimensions: Vec2{X: window.Width, Y: window.Height},
	})
	storage.AddSingleton(ClearColor{R: 0.5, G: 0.7, B: 0.8})
	ecs.NewSingleton[Input](storage)
	ecs.NewSingleton[DebugSettings](storage, DebugSettings{ShowAxes: true})

	storage.Spawn(NewTransform(0, 0, 1), Camera2D{Zoom: 1})
	storage.Spawn(
		NewTransform(0, 0, PixelRatio),
		Sprite{Image: opts.BirdImage, Size: BirdSpriteSize},
		Bird{},
	)
	spawnObstacles(storage, opts.Rand, window.Width, opts.PipeImage)

	opts.Logger.Info("Game setup complete", "width", window.Width, "height", window.Height)
	return nil
}

func spawnObstacles(storage *ecs.Storage, r *rand.Rand, windowWidth float32, pipe ImageHandle) {
	for i := range ObstacleAmount {
		offset := generateOffset(r)
		x := windowWidth/2 + float32(i)*ObstacleSpacing*PixelRatio

		spawnObstacle(storage, x, centeredPipePosition()+offset, 1, pipe)
		spawnObstacle(storage, x, -centeredPipePosition()+offset, -1, pipe)
	}
}

func spawnObstacle(storage *ecs.Storage, x, y, direction float32, pipe ImageHandle) {
	storage.Spawn(
		Transform{
			Translation: Vec3{X: x, Y: y},
			Scale:       Vec2{X: PixelRatio, Y: PixelRatio * -direction},
		},
		Sprite{Image: pipe, Size: PipeSpriteSize},
		Obstacle{PipeDirection: direction},
	)
}

// generateOffset returns a vertical jitter in
// [-ObstacleVerticalOffset, ObstacleVerticalOffset) * PixelRatio.
func generateOffset(r *rand.Rand) float32 {
	return (r.Float32()*2*ObstacleVerticalOffset - ObstacleVerticalOffset) * PixelRatio
}
