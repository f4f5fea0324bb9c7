package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvHeadlessBin = "SPECRUN_HEADLESS_BIN"
	EnvStandardBin = "SPECRUN_STANDARD_BIN"
	EnvReporter    = "SPECRUN_REPORTER"

	// Whitespace-separated argument templates, see DefaultRunnerArgs
	EnvHeadlessArgs = "SPECRUN_HEADLESS_ARGS"
	EnvStandardArgs = "SPECRUN_STANDARD_ARGS"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	LoadRoot    string

	// Output settings
	OutputJSONFile  string
	OutputJSONDir   string
	OutputBenchFile string

	// Loading settings
	Processors int

	// Runner settings
	HeadlessBin  string
	StandardBin  string
	Reporter     string
	HeadlessArgs []string
	StandardArgs []string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:     DefaultProjectPath,
		LoadRoot:        DefaultLoadRoot,
		OutputJSONFile:  DefaultOutputJSONFile,
		OutputJSONDir:   DefaultOutputJSONDir,
		OutputBenchFile: DefaultOutputBenchFile,
		Processors:      DefaultProcessors,
		HeadlessBin:     DefaultHeadlessBin,
		StandardBin:     DefaultStandardBin,
		Reporter:        DefaultReporter,
		Flags: Flags{
			Processors:   DefaultProcessors,
			Count:        DefaultBenchCount,
			BenchTimeout: DefaultBenchTimeout,
		},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	cfg.HeadlessArgs = append([]string(nil), DefaultRunnerArgs...)
	cfg.StandardArgs = append([]string(nil), DefaultRunnerArgs...)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply stores flags on the config and applies their overrides
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
}

// LoadEnv reads the project .env file, if any, and applies SPECRUN_* overrides.
// Variables already set in the process environment win over the file.
func (c *Config) LoadEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load(envPath)

	if v := os.Getenv(EnvHeadlessBin); v != "" {
		c.HeadlessBin = v
	}
	if v := os.Getenv(EnvStandardBin); v != "" {
		c.StandardBin = v
	}
	if v := os.Getenv(EnvReporter); v != "" {
		c.Reporter = v
	}
	if v := strings.Fields(os.Getenv(EnvHeadlessArgs)); len(v) > 0 {
		c.HeadlessArgs = v
	}
	if v := strings.Fields(os.Getenv(EnvStandardArgs)); len(v) > 0 {
		c.StandardArgs = v
	}
}

// GetManifestPath returns the manifest file path, or "" when the built-in manifest should be used
func (c *Config) GetManifestPath() string {
	if c.Flags.Manifest == "" {
		return ""
	}
	if filepath.IsAbs(c.Flags.Manifest) {
		return c.Flags.Manifest
	}
	return filepath.Join(c.ProjectPath, c.Flags.Manifest)
}

// GetLogFilePath returns the log file path, or "" when logging to stderr only
func (c *Config) GetLogFilePath() string {
	if c.Flags.LogFile == "" || filepath.IsAbs(c.Flags.LogFile) {
		return c.Flags.LogFile
	}
	return filepath.Join(c.ProjectPath, c.Flags.LogFile)
}

// GetLoadRoot returns the directory spec targets are resolved against, using flag if provided
func (c *Config) GetLoadRoot() string {
	root := c.LoadRoot
	if c.Flags.Root != "" {
		root = c.Flags.Root
	}
	if filepath.IsAbs(root) {
		return root
	}
	return filepath.Join(c.ProjectPath, root)
}

// GetOutputDir returns the absolute directory holding results, bench results and failure dumps
func (c *Config) GetOutputDir() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetOutputDir(), c.OutputJSONFile)
}

// GetBenchPath returns the full path to the bench results file
func (c *Config) GetBenchPath() string {
	return filepath.Join(c.GetOutputDir(), c.OutputBenchFile)
}

// GetFailDumpPath returns the dump file for a failed run finished at t
func (c *Config) GetFailDumpPath(t time.Time) string {
	return filepath.Join(c.GetOutputDir(), FailDumpPrefix+t.Format(FailDumpTimeFormat)+".txt")
}
