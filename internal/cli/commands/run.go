package commands

import (
	"context"
	"fmt"

	"specrun/internal/config"
	"specrun/internal/ctxlog"
	"specrun/internal/domain"
	"specrun/internal/loader"
	"specrun/internal/parser"
	"specrun/internal/storage"
	"specrun/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	builder   *suiteBuilder
	loader    *loader.FileLoader
	parser    parser.Parser
	storage   storage.Storage
	dumper    storage.FailureDumper
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	builder *suiteBuilder,
	fileLoader *loader.FileLoader,
	p parser.Parser,
	st storage.Storage,
	dumper storage.FailureDumper,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		builder:   builder,
		loader:    fileLoader,
		parser:    p,
		storage:   st,
		dumper:    dumper,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, s, err := rc.builder.Build(ctx)
	if err != nil {
		return err
	}

	targets := s.Targets()
	if len(targets) == 0 {
		color.Yellow("No specs to run")
		return nil
	}

	rc.loader.SetProgress(ui.NewProgressBar(len(targets)))

	if timeout := rc.config.Flags.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := s.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(result.Output)

	passed, failed, pending := rc.parser.ParseCounts(result)
	var failures []domain.TestFailure
	if !result.Success {
		failures = rc.parser.ParseFailures(result)
	}

	var excluded []string
	for _, spec := range m.Excluded() {
		excluded = append(excluded, spec.Target)
	}

	output := storage.NewOutput(m.Name(), result, excluded, passed, failed, pending, failures)
	if !result.Success {
		path, err := rc.dumper.DumpFailure(result)
		if err != nil {
			ctxlog.FromContext(ctx).Warn("Could not write fail dump.", "error", err)
		} else {
			output.Meta.FailDump = path
		}
	}
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save spec results: %w", err)
	}

	rc.formatter.PrintRunStats(output)

	if result.Success {
		return nil
	}
	if rc.config.Flags.OpenFaills && len(failures) > 0 {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("spec run failed: %w", result.Error)
}
