package execution

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"specrun/internal/config"
	"specrun/internal/domain"
)

type fakeRunner struct {
	name      string
	available bool
}

func (f *fakeRunner) Name() string    { return f.name }
func (f *fakeRunner) Available() bool { return f.available }
func (f *fakeRunner) Run(ctx context.Context, targets []string) domain.RunResult {
	return domain.RunResult{Runner: f.name, Targets: targets, Success: true}
}

func TestSelect(t *testing.T) {
	headless := &fakeRunner{name: HeadlessRunner}
	standard := &fakeRunner{name: StandardRunner}

	tests := []struct {
		name     string
		headless bool
		standard bool
		expected string
		wantErr  bool
	}{
		{name: "headless present wins", headless: true, standard: true, expected: HeadlessRunner},
		{name: "headless absent falls back", headless: false, standard: true, expected: StandardRunner},
		{name: "only headless", headless: true, standard: false, expected: HeadlessRunner},
		{name: "none available", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headless.available = tt.headless
			standard.available = tt.standard

			r, err := Select(headless, standard)
			if tt.wantErr {
				if !errors.Is(err, ErrNoRunner) {
					t.Errorf("expected ErrNoRunner, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Name() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, r.Name())
			}
		})
	}

	t.Run("nil candidates are skipped", func(t *testing.T) {
		standard.available = true
		r, err := Select(nil, standard)
		if err != nil || r.Name() != StandardRunner {
			t.Errorf("expected standard runner, got %v, %v", r, err)
		}
	})
}

func TestCommandRunner_Available(t *testing.T) {
	r := NewCommandRunner(HeadlessRunner, "mocha-phantomjs", nil, ".")

	r.lookup = func(string) (string, error) { return "", exec.ErrNotFound }
	if r.Available() {
		t.Error("expected runner to be unavailable when binary is missing")
	}

	r.lookup = func(bin string) (string, error) { return "/usr/local/bin/" + bin, nil }
	if !r.Available() {
		t.Error("expected runner to be available when binary resolves")
	}

	r.bin = ""
	if r.Available() {
		t.Error("expected runner without binary to be unavailable")
	}
}

func TestCommandRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	targets := []string{"../../test/mocha/js/widgets/sort_widget.spec.js", "../../test/mocha/js/widgets/tabs_widget.spec.js"}

	t.Run("passes targets in place of the placeholder", func(t *testing.T) {
		r := NewCommandRunner(StandardRunner, "sh", []string{"-c", `echo "$@"`, "sh", TargetsPlaceholder}, t.TempDir())
		result := r.Run(context.Background(), targets)

		if !result.Success {
			t.Fatalf("expected success, got %v: %s", result.Error, result.Output)
		}
		if strings.TrimSpace(result.Output) != strings.Join(targets, " ") {
			t.Errorf("unexpected output %q", result.Output)
		}
		if result.Runner != StandardRunner {
			t.Errorf("expected runner %s, got %s", StandardRunner, result.Runner)
		}
	})

	t.Run("template without placeholder does not pass targets", func(t *testing.T) {
		r := NewCommandRunner(HeadlessRunner, "sh", []string{"-c", `echo "page:$1 count:$#"`, "sh", "test/mocha/discovery.html"}, t.TempDir())
		result := r.Run(context.Background(), targets)

		if strings.TrimSpace(result.Output) != "page:test/mocha/discovery.html count:1" {
			t.Errorf("unexpected output %q", result.Output)
		}
	})

	t.Run("non-zero exit is a failed run", func(t *testing.T) {
		r := NewCommandRunner(HeadlessRunner, "sh", []string{"-c", "echo '1 failing'; exit 1", "sh"}, t.TempDir())
		result := r.Run(context.Background(), targets)

		if result.Success {
			t.Error("expected failure")
		}
		var exitErr *exec.ExitError
		if !errors.As(result.Error, &exitErr) {
			t.Errorf("expected exit error to be preserved, got %v", result.Error)
		}
		if !strings.Contains(result.Output, "1 failing") {
			t.Errorf("expected output to be captured, got %q", result.Output)
		}
	})
}

func TestCommandRunner_Run_Timeout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := NewCommandRunner(HeadlessRunner, "sh", []string{"-c", "echo started; exec sleep 5"}, t.TempDir())
	result := r.Run(ctx, nil)

	if result.Success || !result.TimedOut {
		t.Fatalf("expected a timed out failure, got success=%v timed_out=%v", result.Success, result.TimedOut)
	}
	if !errors.Is(result.Error, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", result.Error)
	}
	if result.Duration >= 5*time.Second {
		t.Errorf("expected the runner to be stopped early, took %s", result.Duration)
	}
}

func TestExpandArgs(t *testing.T) {
	targets := []string{"js/a.spec.js", "js/b.spec.js"}

	tests := []struct {
		name     string
		template []string
		expected []string
	}{
		{
			name:     "targets in the middle",
			template: []string{"--reporter", "spec", TargetsPlaceholder, "--bail"},
			expected: []string{"--reporter", "spec", "js/a.spec.js", "js/b.spec.js", "--bail"},
		},
		{
			name:     "single page",
			template: []string{"-R", "dot", "discovery.html"},
			expected: []string{"-R", "dot", "discovery.html"},
		},
		{
			name:     "empty template",
			template: nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, ExpandArgs(tt.template, targets)); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewHeadlessRunner_Args(t *testing.T) {
	cfg := config.New()
	cfg.Reporter = "dot"
	cfg.HeadlessArgs = []string{"-R", ReporterPlaceholder, "discovery.html"}

	r := NewHeadlessRunner(cfg)
	if diff := cmp.Diff([]string{"-R", "dot", "discovery.html"}, r.args); diff != "" {
		t.Errorf("headless args mismatch (-want +got):\n%s", diff)
	}

	standard := NewStandardRunner(cfg)
	if diff := cmp.Diff([]string{"--reporter", "dot", TargetsPlaceholder}, standard.args); diff != "" {
		t.Errorf("standard args mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidates(t *testing.T) {
	cfg := config.New()

	all, err := Candidates(cfg, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Name() != HeadlessRunner || all[1].Name() != StandardRunner {
		t.Errorf("expected headless then standard, got %v", all)
	}

	only, err := Candidates(cfg, StandardRunner)
	if err != nil || len(only) != 1 || only[0].Name() != StandardRunner {
		t.Errorf("expected only standard runner, got %v, %v", only, err)
	}

	if _, err := Candidates(cfg, "karma"); err == nil {
		t.Error("expected error for unknown runner")
	}
}
