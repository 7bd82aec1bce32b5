package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock time to run for.")
	ticks := flag.Int64("ticks", 0, "Stop after this many ticks (0 for no limit).")
	step := flag.Duration("step", time.Second/60, "Simulated time per tick.")
	flapEvery := flag.Int("flap-every", 20, "Ticks between synthetic flaps (0 to never flap).")
	seed := flag.Uint64("seed", 1, "Seed for the obstacle jitter.")
	verbose := flag.Bool("v", false, "Log game events to stderr.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	log.Printf("Soaking for %s (step %s)...\n", *duration, *step)

	report, err := Soak(context.Background(), Config{
		Duration:  *duration,
		MaxTicks:  *ticks,
		Step:      *step,
		FlapEvery: *flapEvery,
		Seed:      *seed,
		Logger:    logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
