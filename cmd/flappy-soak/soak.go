package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/flappybird/flappy"
)

// Config describes one soak run.
type Config struct {
	Duration  time.Duration // wall-clock budget
	MaxTicks  int64         // 0 means no limit
	Step      time.Duration // simulated time per tick
	FlapEvery int           // ticks between synthetic flaps, 0 disables
	Seed      uint64
	Logger    *slog.Logger
}

// Soak runs a headless world until the budget is spent and returns the report.
func Soak(ctx context.Context, cfg Config) (*Report, error) {
	world, err := flappy.NewWorld(flappy.Options{
		Window: flappy.PrimaryWindow{Width: flappy.WindowWidth, Height: flappy.WindowHeight},
		Setup: flappy.SetupOptions{
			Rand:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
			Logger: cfg.Logger,
		},
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		Duration:  cfg.Duration,
		Step:      cfg.Step,
		FlapEvery: cfg.FlapEvery,
		Seed:      cfg.Seed,
		DeathTick: -1,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	dt := cfg.Step.Seconds()
	startTime := time.Now()

Loop:
	for cfg.MaxTicks == 0 || report.TotalTicks < cfg.MaxTicks {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		if cfg.FlapEvery > 0 && report.TotalTicks%int64(cfg.FlapEvery) == 0 {
			world.Flap()
			report.Flaps++
		}

		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if report.DeathTick < 0 && world.GameOver() {
			report.DeathTick = report.TotalTicks
		}
		report.TotalTicks++
	}

	report.TotalTime = time.Since(startTime)
	report.SimulatedTime = time.Duration(report.TotalTicks) * cfg.Step
	report.Recycles = world.Obstacles.Recycles
	report.UpdateTime.Finalize()
	report.Scheduler = world.Scheduler.GetStats()
	report.Storage = world.Storage.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}
