package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"specrun/internal/domain"
)

// NewBenchOutput builds the stored form of a bench
func NewBenchOutput(suite string, targets []string, timeout time.Duration, runs []domain.BenchRun, summary domain.BenchSummary) *domain.BenchOutput {
	if runs == nil {
		runs = []domain.BenchRun{}
	}
	return &domain.BenchOutput{
		Suite:     suite,
		Targets:   targets,
		Timeout:   timeout.String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Summary:   summary,
		Runs:      runs,
	}
}

// SaveBench writes bench results to the configured bench file
func (s *JSONStorage) SaveBench(output *domain.BenchOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bench results: %w", err)
	}

	path := s.cfg.GetBenchPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write bench results: %w", err)
	}
	return nil
}

// LoadBench reads the last bench results
func (s *JSONStorage) LoadBench() (*domain.BenchOutput, error) {
	data, err := os.ReadFile(s.cfg.GetBenchPath())
	if err != nil {
		return nil, fmt.Errorf("read bench file: %w", err)
	}

	var output domain.BenchOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse bench results: %w", err)
	}
	return &output, nil
}
