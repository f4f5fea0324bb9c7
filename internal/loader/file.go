package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"specrun/internal/config"
	"specrun/internal/ctxlog"
)

// FileLoader checks that every target resolves to a readable file under a root directory
type FileLoader struct {
	config   *config.Config
	progress Progress
}

// NewFileLoader creates a new FileLoader
func NewFileLoader(cfg *config.Config) *FileLoader {
	return &FileLoader{config: cfg}
}

// SetProgress sets the progress reporter for the loader
func (fl *FileLoader) SetProgress(progress Progress) {
	fl.progress = progress
}

// Path returns the file a target resolves to
func (fl *FileLoader) Path(target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(fl.config.GetLoadRoot(), target)
}

// Load checks all targets in parallel using a pool of workers.
// Errors are returned in target order, joined; there is no retry.
func (fl *FileLoader) Load(ctx context.Context, targets []string, done func()) error {
	logger := ctxlog.FromContext(ctx)

	type job struct {
		index  int
		target string
	}
	queue := make(chan job, len(targets))
	for i, target := range targets {
		queue <- job{index: i, target: target}
	}
	close(queue)

	errs := make([]error, len(targets))

	var mu sync.Mutex
	var loaded, failed int
	workerCount := fl.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range queue {
				err := ctx.Err()
				if err == nil {
					err = fl.loadOne(j.target)
				}
				if err != nil {
					errs[j.index] = fmt.Errorf("load %s: %w", j.target, err)
				}
				logger.Debug("Loaded spec.", "worker", workerID, "target", j.target, "ok", err == nil)

				mu.Lock()
				if err != nil {
					failed++
				} else {
					loaded++
				}
				if fl.progress != nil {
					fl.progress.Update(loaded, failed)
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if fl.progress != nil {
		fl.progress.Finish()
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	done()
	return nil
}

func (fl *FileLoader) loadOne(target string) error {
	path := fl.Path(target)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
