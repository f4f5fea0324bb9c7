package domain

// Spec represents a single test specification listed in a manifest
type Spec struct {
	Path     string // Path relative to the manifest base path
	Target   string // Base path joined with Path
	Disabled bool   // Excluded from loading and running
	Reason   string // Why the spec is disabled, if known
	Group    string // Optional grouping label used for display
}

// TestCase represents a single it(...) block within a spec file
type TestCase struct {
	Name     string // Title passed to it()
	FilePath string // Path to the spec file containing this case
}
