package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"specrun/internal/config"
	"specrun/internal/domain"
)

func TestJSONStorage_Bench(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	if _, err := st.LoadBench(); err == nil {
		t.Error("expected error when no bench was saved")
	}

	runs := []domain.BenchRun{
		{Iteration: 1, Runner: "standard", Success: true, Passed: 3, Duration: "1.5s", DurationSeconds: 1.5},
		{Iteration: 2, Runner: "standard", TimedOut: true, Duration: "1m0s", DurationSeconds: 60, Error: "context deadline exceeded"},
	}
	summary := domain.BenchSummary{Runs: 2, Succeeded: 1, Failed: 1, TimedOut: 1, MinSeconds: 1.5, MeanSeconds: 30.75, MaxSeconds: 60}
	output := NewBenchOutput("discovery-ui2", []string{"../../test/mocha/js/widgets/sort_widget.spec.js"}, time.Minute, runs, summary)

	if err := st.SaveBench(output); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := st.LoadBench()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(output, loaded); diff != "" {
		t.Errorf("bench mismatch (-want +got):\n%s", diff)
	}
	if loaded.Timeout != "1m0s" {
		t.Errorf("expected timeout 1m0s, got %s", loaded.Timeout)
	}
}

func TestNewBenchOutput_EmptyRuns(t *testing.T) {
	output := NewBenchOutput("discovery-ui2", nil, 0, nil, domain.BenchSummary{})
	if output.Runs == nil {
		t.Error("expected non-nil runs")
	}
}
