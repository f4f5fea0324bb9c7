package domain

// BenchRun is one timed iteration of a bench
type BenchRun struct {
	Iteration       int     `json:"iteration"`
	Runner          string  `json:"runner"`
	Success         bool    `json:"success"`
	TimedOut        bool    `json:"timed_out,omitempty"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Pending         int     `json:"pending"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Error           string  `json:"error,omitempty"`
	FailDump        string  `json:"fail_dump,omitempty"`
}

// BenchSummary aggregates the durations of every iteration
type BenchSummary struct {
	Runs        int     `json:"runs"`
	Succeeded   int     `json:"succeeded"`
	Failed      int     `json:"failed"`
	TimedOut    int     `json:"timed_out"`
	MinSeconds  float64 `json:"min_seconds"`
	MeanSeconds float64 `json:"mean_seconds"`
	MaxSeconds  float64 `json:"max_seconds"`
}

// BenchOutput is the stored form of a bench
type BenchOutput struct {
	Suite     string       `json:"suite"`
	Targets   []string     `json:"targets"`
	Timeout   string       `json:"timeout"`
	Timestamp string       `json:"timestamp"`
	Summary   BenchSummary `json:"summary"`
	Runs      []BenchRun   `json:"runs"`
}
