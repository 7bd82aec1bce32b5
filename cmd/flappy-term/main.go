package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flappybird/flappy"
	"github.com/plus3/flappybird/flappy/term"
)

func main() {
	// The screen owns stdout while the game runs, so logs are held back
	// until it is released.
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	defer func() { _, _ = logs.WriteTo(os.Stdout) }()

	world, err := flappy.NewWorld(flappy.Options{
		Window: flappy.PrimaryWindow{Width: flappy.WindowWidth, Height: flappy.WindowHeight},
		Setup:  flappy.SetupOptions{Logger: logger},
	})
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.Run(ctx, screen, world, term.Options{})
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		_, _ = logs.WriteTo(os.Stdout)
		log.Fatal(err)
	}
}
