// Package suite loads every active spec of a manifest and then starts a
// single run on the preferred available runner.
package suite

import (
	"context"
	"sync"

	"specrun/internal/ctxlog"
	"specrun/internal/domain"
	"specrun/internal/execution"
	"specrun/internal/loader"
	"specrun/internal/manifest"
)

// Suite wires a manifest to a loader and a preference-ordered list of runners
type Suite struct {
	manifest *manifest.Manifest
	loader   loader.Loader
	runners  []execution.Runner
	targets  []string
}

// Plan describes what Run would do
type Plan struct {
	Suite    string
	Targets  []string
	Excluded []domain.Spec
	Runner   string // empty when no runner is available
}

// New creates a Suite; runners are given in preference order
func New(m *manifest.Manifest, l loader.Loader, runners ...execution.Runner) *Suite {
	return &Suite{
		manifest: m,
		loader:   l,
		runners:  runners,
		targets:  m.Targets(),
	}
}

// Narrow restricts the run to the given subset of targets, keeping manifest order
func (s *Suite) Narrow(targets []string) {
	keep := make(map[string]bool, len(targets))
	for _, t := range targets {
		keep[t] = true
	}
	var narrowed []string
	for _, t := range s.targets {
		if keep[t] {
			narrowed = append(narrowed, t)
		}
	}
	s.targets = narrowed
}

// Targets returns the resolved paths this suite will load
func (s *Suite) Targets() []string {
	out := make([]string, len(s.targets))
	copy(out, s.targets)
	return out
}

// Plan reports the targets, exclusions and selected runner without loading anything
func (s *Suite) Plan() Plan {
	p := Plan{
		Suite:    s.manifest.Name(),
		Targets:  s.Targets(),
		Excluded: s.manifest.Excluded(),
	}
	if r, err := execution.Select(s.runners...); err == nil {
		p.Runner = r.Name()
	}
	return p
}

// Load makes every target available without running anything
func (s *Suite) Load(ctx context.Context) error {
	return s.loader.Load(ctx, s.Targets(), func() {})
}

// Run loads all targets and, once every load completed, runs them exactly once
// on the first available runner. Loader errors are returned as-is and no
// runner is invoked. The completion callback may fire after Load returns;
// Run waits for it or for ctx.
func (s *Suite) Run(ctx context.Context) (domain.RunResult, error) {
	logger := ctxlog.FromContext(ctx)

	targets := s.Targets()
	logger.Info("Loading specs.", "suite", s.manifest.Name(), "targets", len(targets), "excluded", len(s.manifest.Excluded()))

	var (
		once      sync.Once
		finished  = make(chan struct{})
		result    domain.RunResult
		selectErr error
	)
	err := s.loader.Load(ctx, targets, func() {
		once.Do(func() {
			defer close(finished)
			runner, err := execution.Select(s.runners...)
			if err != nil {
				selectErr = err
				return
			}
			logger.Info("Starting run.", "runner", runner.Name())
			result = runner.Run(ctx, targets)
		})
	})
	if err != nil {
		return domain.RunResult{}, err
	}

	// A run that finished past the deadline still reports its result.
	select {
	case <-finished:
	default:
		select {
		case <-finished:
		case <-ctx.Done():
			return domain.RunResult{}, ctx.Err()
		}
	}
	if selectErr != nil {
		return domain.RunResult{}, selectErr
	}
	return result, nil
}
