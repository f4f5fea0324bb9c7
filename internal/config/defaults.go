package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultLoadRoot is the directory the module loader resolves spec targets against
	DefaultLoadRoot = "src/js"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "spec-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultOutputBenchFile is the bench results file, next to the run results
	DefaultOutputBenchFile = "spec-bench.json"
	// FailDumpPrefix names the runner output dumps written for failed runs
	FailDumpPrefix = "FAIL_DUMP_"
	// FailDumpTimeFormat is the timestamp layout of dump file names
	FailDumpTimeFormat = "2006-01-02_15:04:05"
	// DefaultProcessors is the default number of concurrent loads
	DefaultProcessors = 4
	// DefaultHeadlessBin is the headless browser automation runner
	DefaultHeadlessBin = "mocha-phantomjs"
	// DefaultStandardBin is the fallback runner
	DefaultStandardBin = "mocha"
	// DefaultReporter is the mocha reporter passed to both runners
	DefaultReporter = "spec"
	// DefaultSpecSuffix identifies spec files on disk
	DefaultSpecSuffix = ".spec.js"
	// DefaultBenchCount is the number of timed runs of a bench
	DefaultBenchCount = 3
	// DefaultBenchTimeout bounds each bench iteration
	DefaultBenchTimeout = 60 * time.Second
)

// DefaultRunnerArgs is the argument template of both runners.
// {reporter} is replaced by the reporter, {targets} expands to one argument per spec target.
var DefaultRunnerArgs = []string{"--reporter", "{reporter}", "{targets}"}

// DefaultPathsToIgnore are the default directories to ignore when scanning for specs
var DefaultPathsToIgnore = []string{
	"node_modules",
	"bower_components",
	"libs",
	"storage",
	"dist",
}
