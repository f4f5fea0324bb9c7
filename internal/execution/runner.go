package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"specrun/internal/config"
	"specrun/internal/ctxlog"
	"specrun/internal/domain"
)

// Runner names
const (
	HeadlessRunner = "headless"
	StandardRunner = "standard"
)

// ErrNoRunner is returned by Select when no candidate is available
var ErrNoRunner = errors.New("no test runner available")

// Runner executes every loaded spec in one invocation
type Runner interface {
	Name() string
	Available() bool
	Run(ctx context.Context, targets []string) domain.RunResult
}

// CommandRunner runs specs through an external binary
type CommandRunner struct {
	name   string
	bin    string
	args   []string
	dir    string
	lookup func(string) (string, error)
}

// Placeholders understood in runner argument templates
const (
	ReporterPlaceholder = "{reporter}"
	TargetsPlaceholder  = "{targets}"
)

// NewCommandRunner creates a runner invoking bin with args in dir.
// An argument equal to TargetsPlaceholder expands to the targets; without one
// the targets are not passed, as when the binary opens a single test page.
func NewCommandRunner(name, bin string, args []string, dir string) *CommandRunner {
	return &CommandRunner{
		name:   name,
		bin:    bin,
		args:   args,
		dir:    dir,
		lookup: exec.LookPath,
	}
}

// NewHeadlessRunner creates the headless browser automation runner
func NewHeadlessRunner(cfg *config.Config) *CommandRunner {
	return NewCommandRunner(HeadlessRunner, cfg.HeadlessBin, withReporter(cfg.HeadlessArgs, cfg.Reporter), cfg.GetLoadRoot())
}

// NewStandardRunner creates the standard runner
func NewStandardRunner(cfg *config.Config) *CommandRunner {
	return NewCommandRunner(StandardRunner, cfg.StandardBin, withReporter(cfg.StandardArgs, cfg.Reporter), cfg.GetLoadRoot())
}

func withReporter(template []string, reporter string) []string {
	args := make([]string, len(template))
	for i, a := range template {
		args[i] = strings.ReplaceAll(a, ReporterPlaceholder, reporter)
	}
	return args
}

// ExpandArgs replaces every TargetsPlaceholder argument with the targets
func ExpandArgs(template, targets []string) []string {
	args := make([]string, 0, len(template)+len(targets))
	for _, a := range template {
		if a == TargetsPlaceholder {
			args = append(args, targets...)
			continue
		}
		args = append(args, a)
	}
	return args
}

// Name returns the runner name
func (r *CommandRunner) Name() string {
	return r.name
}

// Available reports whether the runner binary can be found
func (r *CommandRunner) Available() bool {
	if r.bin == "" {
		return false
	}
	_, err := r.lookup(r.bin)
	return err == nil
}

// Run executes the runner binary once for all targets
func (r *CommandRunner) Run(ctx context.Context, targets []string) domain.RunResult {
	logger := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, r.bin, ExpandArgs(r.args, targets)...)
	cmd.Env = os.Environ()
	cmd.Dir = r.dir

	logger.Debug("Starting runner.", "runner", r.name, "bin", r.bin, "targets", len(targets))
	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
	switch {
	case err != nil && timedOut:
		err = fmt.Errorf("%s runner: %w after %s (%w)", r.name, context.DeadlineExceeded, duration.Round(time.Millisecond), err)
	case err != nil:
		err = fmt.Errorf("%s runner: %w", r.name, err)
	}
	logger.Debug("Runner finished.", "runner", r.name, "duration", duration, "ok", err == nil, "timed_out", timedOut)

	return domain.RunResult{
		Runner:   r.name,
		Targets:  targets,
		Success:  err == nil,
		TimedOut: timedOut && err != nil,
		Output:   string(output),
		Error:    err,
		Duration: duration,
	}
}

// Select returns the first available candidate, in preference order
func Select(candidates ...Runner) (Runner, error) {
	for _, c := range candidates {
		if c != nil && c.Available() {
			return c, nil
		}
	}
	return nil, ErrNoRunner
}

// Candidates returns the runners in preference order, headless first.
// A non-empty only restricts the list to the runner with that name.
func Candidates(cfg *config.Config, only string) ([]Runner, error) {
	all := []Runner{NewHeadlessRunner(cfg), NewStandardRunner(cfg)}
	if only == "" {
		return all, nil
	}
	for _, r := range all {
		if r.Name() == only {
			return []Runner{r}, nil
		}
	}
	return nil, fmt.Errorf("unknown runner %q (want %s or %s)", only, HeadlessRunner, StandardRunner)
}
