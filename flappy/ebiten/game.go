package ebiten

import (
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flappybird/ecs"
	"github.com/plus3/flappybird/ecs/debugui"
	debugui_ebiten "github.com/plus3/flappybird/ecs/debugui/ebiten"
	"github.com/plus3/flappybird/flappy"
)

// Options configures NewGame.
type Options struct {
	AssetDir string
	Width    int
	Height   int
	Logger   *slog.Logger
	Rand     *rand.Rand
}

// Game implements ebiten.Game. Gameplay runs in Update between the ImGui
// frame markers; sprites, gizmos and the overlay are drawn in Draw.
type Game struct {
	world   *flappy.World
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]

	render   *ecs.Scheduler
	renderer *RenderSystem
	gizmo    *GizmoSystem
}

// NewGame builds the world around backend and spawns the inspector.
func NewGame(backend debugui_ebiten.ImguiBackend, opts Options) (*Game, error) {
	if opts.Width == 0 {
		opts.Width = flappy.WindowWidth
	}
	if opts.Height == 0 {
		opts.Height = flappy.WindowHeight
	}

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)

	world, err := flappy.NewWorld(flappy.Options{
		Window: flappy.PrimaryWindow{
			Title:  flappy.WindowTitle,
			Width:  float32(opts.Width),
			Height: float32(opts.Height),
		},
		Setup:    flappy.SetupOptions{Rand: opts.Rand, Logger: opts.Logger},
		Registry: registry,
		Before:   []ecs.System{NewInputSystem()},
		After:    []ecs.System{debugui_ebiten.NewToggleSystem(), &debugui.ImguiSystem{}},
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:    world,
		backend:  ecs.NewSingleton(world.Storage, backend),
		render:   ecs.NewScheduler(world.Storage),
		renderer: &RenderSystem{Images: NewImageCache(opts.AssetDir, opts.Logger)},
		gizmo:    &GizmoSystem{},
	}
	g.render.Register(g.renderer)
	g.render.Register(g.gizmo)

	debugui.SpawnInspector(world.Storage, world.Scheduler)

	return g, nil
}

// World returns the running world.
func (g *Game) World() *flappy.World {
	return g.world
}

func (g *Game) Update() error {
	backend := g.backend.Get()

	backend.BeginFrame()
	g.world.Step(1.0 / float64(ebiten.TPS()))
	backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.screen = screen
	g.gizmo.screen = screen
	g.gizmo.viewport = g.renderer.viewport()

	g.render.Once(0)

	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
