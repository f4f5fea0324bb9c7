package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"specrun/internal/config"
	"specrun/internal/discovery"
	"specrun/internal/loader"
	"specrun/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	builder   *suiteBuilder
	loader    *loader.FileLoader
	scanner   *discovery.Scanner
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	builder *suiteBuilder,
	fileLoader *loader.FileLoader,
	scanner *discovery.Scanner,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		builder:   builder,
		loader:    fileLoader,
		scanner:   scanner,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	m, s, err := lc.builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	if err := lc.formatter.PrintManifest(m, s.Plan(), lc.config.Flags.TestCases, lc.loader.Path); err != nil {
		return err
	}

	if !lc.config.Flags.Untracked {
		return nil
	}

	scanned, err := lc.scanner.Scan(lc.loader.Path(m.BasePath()))
	if err != nil {
		return err
	}
	var tracked []string
	for _, spec := range m.Specs() {
		tracked = append(tracked, lc.loader.Path(spec.Target))
	}

	untracked := discovery.Untracked(scanned, tracked)
	for i, path := range untracked {
		// Get relative path for cleaner display
		if rel, err := filepath.Rel(lc.config.ProjectPath, path); err == nil {
			untracked[i] = rel
		}
	}
	lc.formatter.PrintUntracked(untracked)
	return nil
}
