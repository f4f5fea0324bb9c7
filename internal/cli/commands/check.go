package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"specrun/internal/config"
	"specrun/internal/loader"
	"specrun/internal/ui"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config  *config.Config
	builder *suiteBuilder
	loader  *loader.FileLoader
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, builder *suiteBuilder, fileLoader *loader.FileLoader) *CheckCommand {
	return &CheckCommand{
		config:  cfg,
		builder: builder,
		loader:  fileLoader,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	m, s, err := cc.builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	targets := s.Targets()
	cc.loader.SetProgress(ui.NewProgressBar(len(targets)))
	if err := s.Load(cmd.Context()); err != nil {
		return err
	}

	color.Green("✓ %s: %d spec(s) loadable, %d disabled", m.Name(), len(targets), len(m.Excluded()))
	return nil
}
