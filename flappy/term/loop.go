package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flappybird/flappy"
)

// Action is what a key press asks the loop to do.
type Action int

const (
	ActionNone Action = iota
	ActionFlap
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return ActionFlap
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

// Options configures Run.
type Options struct {
	// TickRate is the time between simulation steps. Defaults to 1/60 s.
	TickRate time.Duration
}

// Run plays world on screen until the player quits or ctx is cancelled.
// Events are read on a separate goroutine; only the calling goroutine
// touches the world.
func Run(ctx context.Context, screen tcell.Screen, world *flappy.World, opts Options) error {
	if opts.TickRate <= 0 {
		opts.TickRate = time.Second / 60
	}

	renderer := NewRenderer(screen, world.Storage)
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.TickRate)
	defer ticker.Stop()
	last := time.Now()

	renderer.Draw(world.Storage)
	screen.Show()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch keyToAction(ev) {
				case ActionQuit:
					return nil
				case ActionFlap:
					world.Flap()
				}
			}

		case now := <-ticker.C:
			world.Step(now.Sub(last).Seconds())
			last = now
			renderer.Draw(world.Storage)
			screen.Show()
		}
	}
}
