package domain

// TestFailure represents a failed test case reported by the runner
type TestFailure struct {
	Number     int      `json:"number"`
	TestName   string   `json:"test_name"`
	Suite      string   `json:"suite"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stack_trace"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
