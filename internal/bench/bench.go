// Package bench times repeated suite runs.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"specrun/internal/ctxlog"
	"specrun/internal/domain"
	"specrun/internal/parser"
	"specrun/internal/storage"
)

// Suite is the part of a suite a bench drives
type Suite interface {
	Run(ctx context.Context) (domain.RunResult, error)
}

// Bench runs a suite repeatedly, each iteration bounded by a timeout
type Bench struct {
	parser  parser.Parser
	dumper  storage.FailureDumper
	timeout time.Duration
}

// New creates a Bench; a zero timeout leaves iterations unbounded
func New(p parser.Parser, dumper storage.FailureDumper, timeout time.Duration) *Bench {
	return &Bench{parser: p, dumper: dumper, timeout: timeout}
}

// Measure runs s count times. Failed and timed out iterations are recorded and
// the bench continues; a load failure or a missing runner stops it.
func (b *Bench) Measure(ctx context.Context, s Suite, count int) ([]domain.BenchRun, error) {
	if count < 1 {
		return nil, fmt.Errorf("bench count must be at least 1, got %d", count)
	}
	logger := ctxlog.FromContext(ctx)

	runs := make([]domain.BenchRun, 0, count)
	for i := 1; i <= count; i++ {
		run, err := b.iteration(ctx, s, i)
		if err != nil {
			return runs, fmt.Errorf("bench iteration %d: %w", i, err)
		}
		logger.Info("Bench iteration finished.", "iteration", i, "runner", run.Runner, "duration", run.Duration, "success", run.Success, "timed_out", run.TimedOut)
		runs = append(runs, run)
	}
	return runs, nil
}

func (b *Bench) iteration(ctx context.Context, s Suite, i int) (domain.BenchRun, error) {
	iterCtx := ctx
	if b.timeout > 0 {
		var cancel context.CancelFunc
		iterCtx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.Run(iterCtx)
	if err != nil {
		// Loading ran past the deadline: the iteration timed out before the runner started.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			d := time.Since(start)
			return domain.BenchRun{
				Iteration:       i,
				TimedOut:        true,
				Duration:        d.String(),
				DurationSeconds: d.Seconds(),
				Error:           err.Error(),
			}, nil
		}
		return domain.BenchRun{}, err
	}

	passed, failed, pending := b.parser.ParseCounts(result)
	run := domain.BenchRun{
		Iteration:       i,
		Runner:          result.Runner,
		Success:         result.Success,
		TimedOut:        result.TimedOut,
		Passed:          passed,
		Failed:          failed,
		Pending:         pending,
		Duration:        result.Duration.String(),
		DurationSeconds: result.Duration.Seconds(),
	}
	if result.Error != nil {
		run.Error = result.Error.Error()
	}
	if !result.Success && b.dumper != nil {
		path, err := b.dumper.DumpFailure(result)
		if err != nil {
			ctxlog.FromContext(ctx).Warn("Could not write fail dump.", "iteration", i, "error", err)
		} else {
			run.FailDump = path
		}
	}
	return run, nil
}

// Summarize aggregates iteration durations. Timed out iterations count as
// failures and are left out of min, mean and max.
func Summarize(runs []domain.BenchRun) domain.BenchSummary {
	summary := domain.BenchSummary{Runs: len(runs)}

	var total float64
	timed := 0
	lo, hi := math.Inf(1), 0.0
	for _, r := range runs {
		switch {
		case r.TimedOut:
			summary.TimedOut++
			summary.Failed++
			continue
		case r.Success:
			summary.Succeeded++
		default:
			summary.Failed++
		}
		timed++
		total += r.DurationSeconds
		lo = math.Min(lo, r.DurationSeconds)
		hi = math.Max(hi, r.DurationSeconds)
	}

	if timed > 0 {
		summary.MinSeconds = lo
		summary.MaxSeconds = hi
		summary.MeanSeconds = total / float64(timed)
	}
	return summary
}
