package storage

import (
	"specrun/internal/config"
	"specrun/internal/domain"
)

// Storage persists and loads run results (e.g. for the faills viewer).
type Storage interface {
	Save(output *domain.RunResultsOutput) error
	Load() (*domain.RunResultsOutput, error)
}

// FailureDumper keeps the raw runner output of failed runs for later inspection
type FailureDumper interface {
	DumpFailure(result domain.RunResult) (string, error)
}

// BenchStorage persists the results of a bench
type BenchStorage interface {
	SaveBench(output *domain.BenchOutput) error
	LoadBench() (*domain.BenchOutput, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
