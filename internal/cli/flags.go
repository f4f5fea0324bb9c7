package cli

import (
	"time"

	"specrun/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Processors   int
	Manifest     string
	Root         string
	NameFilter   string
	Runner       string
	Untracked    bool
	TestCases    bool
	Verbose      bool
	LogFile      string
	OpenFaills   bool
	Timeout      time.Duration
	Count        int
	BenchTimeout time.Duration
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		Manifest:     f.Manifest,
		Root:         f.Root,
		NameFilter:   f.NameFilter,
		Runner:       f.Runner,
		Untracked:    f.Untracked,
		TestCases:    f.TestCases,
		Verbose:      f.Verbose,
		LogFile:      f.LogFile,
		OpenFaills:   f.OpenFaills,
		Timeout:      f.Timeout,
		Count:        f.Count,
		BenchTimeout: f.BenchTimeout,
	}
}
