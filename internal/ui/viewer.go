package ui

import "specrun/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunResultsOutput) error
}
