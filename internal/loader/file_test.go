package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"specrun/internal/config"
)

type recordingProgress struct {
	mu       sync.Mutex
	updates  int
	loaded   int
	failed   int
	finished bool
}

func (p *recordingProgress) Update(loaded, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.loaded, p.failed = loaded, failed
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func setupProject(t *testing.T, files []string) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "src", "js"), 0755); err != nil {
		t.Fatalf("failed to create load root: %v", err)
	}
	for _, file := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("define([], function () {});"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	cfg := config.New()
	cfg.ProjectPath = tmpDir
	cfg.Processors = 3
	return cfg
}

func TestFileLoader_Load(t *testing.T) {
	cfg := setupProject(t, []string{
		"test/mocha/js/widgets/sort_widget.spec.js",
		"test/mocha/js/widgets/tabs_widget.spec.js",
		"test/mocha/js/widgets/network_widget.spec.js",
	})
	targets := []string{
		"../../test/mocha/js/widgets/sort_widget.spec.js",
		"../../test/mocha/js/widgets/tabs_widget.spec.js",
		"../../test/mocha/js/widgets/network_widget.spec.js",
	}

	t.Run("calls done once after all targets load", func(t *testing.T) {
		fl := NewFileLoader(cfg)
		progress := &recordingProgress{}
		fl.SetProgress(progress)

		calls := 0
		err := fl.Load(context.Background(), targets, func() {
			calls++
			if progress.loaded != len(targets) {
				t.Errorf("done called after %d of %d loads", progress.loaded, len(targets))
			}
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected done to be called once, got %d", calls)
		}
		if !progress.finished || progress.updates != len(targets) {
			t.Errorf("expected %d progress updates and finish, got %d (finished=%v)", len(targets), progress.updates, progress.finished)
		}
	})

	t.Run("missing target fails without calling done", func(t *testing.T) {
		fl := NewFileLoader(cfg)
		missing := append([]string{}, targets...)
		missing = append(missing, "../../test/mocha/js/widgets/similar_widget.spec.js")

		called := false
		err := fl.Load(context.Background(), missing, func() { called = true })
		if err == nil {
			t.Fatal("expected error for missing target")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected underlying not-exist error, got %v", err)
		}
		if called {
			t.Error("done should not be called when a load fails")
		}
	})

	t.Run("directory is not loadable", func(t *testing.T) {
		fl := NewFileLoader(cfg)
		err := fl.Load(context.Background(), []string{"../../test/mocha/js/widgets"}, func() {
			t.Error("done should not be called")
		})
		if err == nil {
			t.Error("expected error for directory target")
		}
	})

	t.Run("canceled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewFileLoader(cfg).Load(ctx, targets, func() {
			t.Error("done should not be called")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("no targets calls done", func(t *testing.T) {
		called := false
		if err := NewFileLoader(cfg).Load(context.Background(), nil, func() { called = true }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !called {
			t.Error("expected done to be called")
		}
	})
}

func TestFileLoader_Path(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = "/project"
	fl := NewFileLoader(cfg)

	got := fl.Path("../../test/mocha/js/widgets/sort_widget.spec.js")
	if got != "/project/test/mocha/js/widgets/sort_widget.spec.js" {
		t.Errorf("unexpected path %s", got)
	}
	if got := fl.Path("/abs/a.spec.js"); got != "/abs/a.spec.js" {
		t.Errorf("unexpected path %s", got)
	}
}
