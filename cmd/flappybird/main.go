package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/flappybird/ecs/debugui/ebiten"
	"github.com/plus3/flappybird/flappy"
	flappy_ebiten "github.com/plus3/flappybird/flappy/ebiten"
)

const assetDir = "assets"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	backend := debugui_ebiten.NewImguiBackend(flappy.WindowTitle, flappy.WindowWidth, flappy.WindowHeight)
	ebiten.SetWindowTitle(flappy.WindowTitle)
	ebiten.SetWindowSize(flappy.WindowWidth, flappy.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	centerWindow(flappy.WindowWidth, flappy.WindowHeight)

	game, err := flappy_ebiten.NewGame(backend, flappy_ebiten.Options{
		AssetDir: assetDir,
		Logger:   logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func centerWindow(width, height int) {
	monitorWidth, monitorHeight := ebiten.Monitor().Size()
	ebiten.SetWindowPosition((monitorWidth-width)/2, (monitorHeight-height)/2)
}
