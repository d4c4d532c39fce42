// Command sweepcheck runs the scenario table through both geometry engines,
// checks every expectation and the agreement between the engines, and
// verifies that the fixed-point engine answers identically across concurrent
// runs. It exits with status 1 if anything fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/irfansharif/sweep/internal/log"
	"github.com/irfansharif/sweep/internal/scenario"
)

func main() {
	tablePath := flag.String("table", "", "scenario table (YAML); defaults to $"+scenario.TableEnv+" or the built-in table")
	runs := flag.Int("runs", 8, "concurrent evaluations for the determinism check")
	verbose := flag.Bool("v", false, "log every scenario, not just failures")
	flag.Parse()

	logger := log.New(log.LevelFromEnv())
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logger, *tablePath, *runs, *verbose); err != nil {
		logger.Error("check failed", log.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, tablePath string, runs int, verbose bool) error {
	table, err := scenario.Resolve(tablePath)
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}

	start := time.Now()
	results := scenario.Run(table)
	for i := range results {
		r := &results[i]
		fields := []log.Field{
			log.String("scenario", r.Scenario.Name),
			log.String("kind", string(r.Scenario.Kind)),
			log.String("float", outcome(r.Float, r.Scenario.Kind)),
			log.String("fixed", outcome(r.Fixed, r.Scenario.Kind)),
		}
		if !r.Pass() {
			logger.Warn("FAIL", append(fields, log.String("problems", strings.Join(r.Problems, "; ")))...)
			continue
		}
		if verbose {
			logger.Info("ok", fields...)
		}
	}
	failed := len(scenario.Failures(results))
	logger.Info("evaluated scenarios",
		log.Int("total", len(results)),
		log.Int("failed", failed),
		log.Duration("took", time.Since(start)),
	)

	digest, err := scenario.CheckDeterminism(ctx, table, runs)
	if err != nil {
		return fmt.Errorf("determinism: %w", err)
	}
	logger.Info("fixed-point results are deterministic",
		log.Int("runs", runs),
		log.String("digest", fmt.Sprintf("%016x", digest)),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

func outcome(o scenario.Outcome, kind scenario.Kind) string {
	switch {
	case o.Unsupported:
		return "unsupported"
	case o.Err != nil:
		return "error: " + o.Err.Error()
	case kind == scenario.Cast && o.Hit:
		return fmt.Sprintf("hit at %.6g", o.Distance)
	case kind == scenario.Intersect:
		return fmt.Sprintf("%d points", len(o.Points))
	default:
		return fmt.Sprintf("hit=%t", o.Hit)
	}
}
