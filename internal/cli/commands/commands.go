package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"specrun/internal/cli"
	"specrun/internal/config"
	"specrun/internal/ctxlog"
	"specrun/internal/discovery"
	"specrun/internal/execution"
	"specrun/internal/loader"
	"specrun/internal/manifest"
	"specrun/internal/parser"
	"specrun/internal/storage"
	"specrun/internal/suite"
	"specrun/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Check  *CheckCommand
	Bench  *BenchCommand
	Faills *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	fileLoader := loader.NewFileLoader(cfg)
	filter := discovery.NewFilter()
	scanner := discovery.NewScanner(config.DefaultSpecSuffix, cfg.PathsToIgnore)
	testCaseParser := discovery.NewParser()
	mochaParser := parser.NewMochaParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(testCaseParser)
	errorViewer := ui.NewErrorViewer(jsonStorage)
	builder := &suiteBuilder{config: cfg, loader: fileLoader, filter: filter}

	return &Commands{
		Run:    NewRunCommand(cfg, builder, fileLoader, mochaParser, jsonStorage, jsonStorage, formatter, errorViewer),
		List:   NewListCommand(cfg, builder, fileLoader, scanner, formatter),
		Check:  NewCheckCommand(cfg, builder, fileLoader),
		Bench:  NewBenchCommand(cfg, builder, mochaParser, jsonStorage, jsonStorage, formatter),
		Faills: NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	prepare := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Apply(flags.ToConfigFlags())
		cfg.LoadEnv()

		var logOut io.Writer = os.Stderr
		if path := cfg.GetLogFilePath(); path != "" {
			// Left open for the life of the process.
			f, err := ctxlog.OpenFile(path)
			if err != nil {
				return err
			}
			logOut = io.MultiWriter(os.Stderr, f)
		}
		ctx := ctxlog.WithLogger(cmd.Context(), ctxlog.New(logOut, flags.Verbose))
		cmd.SetContext(ctx)
		return nil
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Also append log records to this file")

	addManifestFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.Manifest, "manifest", "m", "", "Path to an HCL suite manifest (defaults to the built-in UI widget suite)")
		cmd.Flags().StringVarP(&flags.Root, "root", "r", "", "Directory spec paths are resolved against (default \""+config.DefaultLoadRoot+"\")")
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Load all manifest specs and run them",
		Long:    "Load every active spec listed in the manifest, then run them once on the headless runner if installed, otherwise on the standard runner",
		RunE:    c.Run.Execute,
		PreRunE: prepare,
	}
	addManifestFlags(runCmd)
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of specs to load concurrently")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter specs by file name pattern (supports wildcards, e.g., '*sort_widget.spec.js' or '*facet*')")
	runCmd.Flags().StringVar(&flags.Runner, "runner", "", "Force a runner ("+execution.HeadlessRunner+" or "+execution.StandardRunner+")")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Stop loading and running after this long (0 for no limit)")
	rootCmd.AddCommand(runCmd)

	// Bench command
	benchCmd := &cobra.Command{
		Use:     "bench",
		Short:   "Time repeated runs of the manifest specs",
		Long:    "Load and run the active specs several times, each run bounded by a timeout, and store the durations",
		RunE:    c.Bench.Execute,
		PreRunE: prepare,
	}
	addManifestFlags(benchCmd)
	benchCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of specs to load concurrently")
	benchCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter specs by file name pattern (supports wildcards, e.g., '*sort_widget.spec.js' or '*facet*')")
	benchCmd.Flags().StringVar(&flags.Runner, "runner", "", "Force a runner ("+execution.HeadlessRunner+" or "+execution.StandardRunner+")")
	benchCmd.Flags().IntVarP(&flags.Count, "count", "n", config.DefaultBenchCount, "Number of timed runs")
	benchCmd.Flags().DurationVar(&flags.BenchTimeout, "timeout", config.DefaultBenchTimeout, "Time limit of each run (0 for no limit)")
	rootCmd.AddCommand(benchCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List manifest specs",
		Long:    "Print the manifest specs, which are disabled and why, and which runner would be used, without loading anything",
		RunE:    c.List.Execute,
		PreRunE: prepare,
	}
	addManifestFlags(listCmd)
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter specs by file name pattern (supports wildcards, e.g., '*sort_widget.spec.js' or '*facet*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases of each active spec")
	listCmd.Flags().BoolVarP(&flags.Untracked, "untracked", "u", false, "Also list spec files under the base path that the manifest does not mention")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Validate the manifest and load every spec without running",
		Long:    "Validate the manifest (no blank or duplicate entries) and make sure every active spec resolves to a loadable file",
		RunE:    c.Check.Execute,
		PreRunE: prepare,
	}
	addManifestFlags(checkCmd)
	checkCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of specs to load concurrently")
	rootCmd.AddCommand(checkCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:     "faills",
		Short:   "View spec failures interactively",
		Long:    "Display failures from the last run in an interactive viewer",
		RunE:    c.Faills.Execute,
		PreRunE: prepare,
	}
	rootCmd.AddCommand(faillsCmd)
}

// suiteBuilder resolves the manifest selected by flags into a suite
type suiteBuilder struct {
	config *config.Config
	loader loader.Loader
	filter *discovery.Filter
}

// Build loads and validates the manifest and applies the name filter
func (b *suiteBuilder) Build(ctx context.Context) (*manifest.Manifest, *suite.Suite, error) {
	m := manifest.Default()
	if path := b.config.GetManifestPath(); path != "" {
		decoded, err := manifest.DecodeFile(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		m = decoded
	}
	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid manifest %s:\n%w", m.Name(), err)
	}

	runners, err := execution.Candidates(b.config, b.config.Flags.Runner)
	if err != nil {
		return nil, nil, err
	}

	s := suite.New(m, b.loader, runners...)
	if pattern := b.config.Flags.NameFilter; pattern != "" {
		s.Narrow(b.filter.FilterByName(m.Targets(), pattern))
	}
	return m, s, nil
}
