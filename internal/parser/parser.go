package parser

import "specrun/internal/domain"

// Parser parses runner output and extracts failures
type Parser interface {
	ParseCounts(result domain.RunResult) (passed, failed, pending int)
	ParseFailures(result domain.RunResult) []domain.TestFailure
}
