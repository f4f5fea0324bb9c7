package domain

import "time"

// RunResult represents the result of a single runner invocation over all loaded specs
type RunResult struct {
	Runner   string        // Name of the runner that executed the specs
	Targets  []string      // Resolved spec paths handed to the runner
	Success  bool          // Whether the runner exited cleanly
	TimedOut bool          // Whether the run was stopped by its deadline
	Output   string        // Raw output from the runner
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}

// RunResultsMeta contains metadata about a run
type RunResultsMeta struct {
	Suite           string   `json:"suite"`
	Runner          string   `json:"runner"`
	Targets         []string `json:"targets"`
	Excluded        []string `json:"excluded,omitempty"`
	Passed          int      `json:"passed"`
	Failed          int      `json:"failed"`
	Pending         int      `json:"pending"`
	Success         bool     `json:"success"`
	TimedOut        bool     `json:"timed_out,omitempty"`
	FailDump        string   `json:"fail_dump,omitempty"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	Timestamp       string   `json:"timestamp"`
}

// RunResultsOutput is the complete output structure for a run
type RunResultsOutput struct {
	Meta    RunResultsMeta `json:"meta"`
	Details []TestFailure  `json:"details"`
}
