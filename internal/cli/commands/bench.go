package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"specrun/internal/bench"
	"specrun/internal/config"
	"specrun/internal/parser"
	"specrun/internal/storage"
	"specrun/internal/ui"
)

// BenchCommand handles the bench command
type BenchCommand struct {
	config    *config.Config
	builder   *suiteBuilder
	parser    parser.Parser
	storage   storage.BenchStorage
	dumper    storage.FailureDumper
	formatter *ui.Formatter
}

// NewBenchCommand creates a new BenchCommand
func NewBenchCommand(
	cfg *config.Config,
	builder *suiteBuilder,
	p parser.Parser,
	st storage.BenchStorage,
	dumper storage.FailureDumper,
	formatter *ui.Formatter,
) *BenchCommand {
	return &BenchCommand{
		config:    cfg,
		builder:   builder,
		parser:    p,
		storage:   st,
		dumper:    dumper,
		formatter: formatter,
	}
}

// Execute runs the command
func (bc *BenchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, s, err := bc.builder.Build(ctx)
	if err != nil {
		return err
	}

	targets := s.Targets()
	if len(targets) == 0 {
		color.Yellow("No specs to bench")
		return nil
	}

	count := bc.config.Flags.Count
	timeout := bc.config.Flags.BenchTimeout
	color.Cyan("Benchmarking %s: %d run(s) of %d spec(s), %s per run", m.Name(), count, len(targets), timeoutLabel(timeout))

	runs, measureErr := bench.New(bc.parser, bc.dumper, timeout).Measure(ctx, s, count)
	if measureErr != nil && len(runs) == 0 {
		return measureErr
	}

	output := storage.NewBenchOutput(m.Name(), targets, timeout, runs, bench.Summarize(runs))
	if err := bc.storage.SaveBench(output); err != nil {
		return fmt.Errorf("failed to save bench results: %w", err)
	}
	bc.formatter.PrintBenchStats(output)

	if measureErr != nil {
		return measureErr
	}
	if output.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d bench run(s) failed", output.Summary.Failed, output.Summary.Runs)
	}
	return nil
}

func timeoutLabel(d time.Duration) string {
	if d <= 0 {
		return "no time limit"
	}
	return "at most " + d.String()
}
