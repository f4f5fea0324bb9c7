package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"specrun/internal/domain"
)

// NewOutput builds the stored form of a run
func NewOutput(suite string, result domain.RunResult, excluded []string, passed, failed, pending int, failures []domain.TestFailure) *domain.RunResultsOutput {
	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.RunResultsOutput{
		Meta: domain.RunResultsMeta{
			Suite:           suite,
			Runner:          result.Runner,
			Targets:         result.Targets,
			Excluded:        excluded,
			Passed:          passed,
			Failed:          failed,
			Pending:         pending,
			Success:         result.Success,
			TimedOut:        result.TimedOut,
			Duration:        result.Duration.String(),
			DurationSeconds: result.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
}

// Save writes the output to the configured JSON file.
func (s *JSONStorage) Save(output *domain.RunResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}
