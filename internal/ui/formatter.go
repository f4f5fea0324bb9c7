package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"specrun/internal/discovery"
	"specrun/internal/domain"
	"specrun/internal/manifest"
	"specrun/internal/suite"
)

// Formatter formats and displays output
type Formatter struct {
	out    io.Writer
	parser *discovery.Parser
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(parser *discovery.Parser) *Formatter {
	return &Formatter{out: os.Stdout, parser: parser}
}

// SetOutput redirects the formatter output
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintManifest prints the suite as a tree grouped by group label.
// When showTestCases is set, each active spec is read through pathOf to list its it() titles.
func (f *Formatter) PrintManifest(m *manifest.Manifest, plan suite.Plan, showTestCases bool, pathOf func(target string) string) error {
	specs := m.Specs()
	fmt.Fprintln(f.out, color.GreenString("Suite %s: %d spec(s), %d active, %d disabled", m.Name(), len(specs), len(plan.Targets), len(plan.Excluded)))
	fmt.Fprintln(f.out, color.WhiteString("Base path: %s", m.BasePath()))
	if plan.Runner != "" {
		fmt.Fprintln(f.out, color.WhiteString("Runner: %s", plan.Runner))
	} else {
		fmt.Fprintln(f.out, color.RedString("Runner: none available"))
	}
	fmt.Fprintln(f.out)

	planned := make(map[string]bool, len(plan.Targets))
	for _, t := range plan.Targets {
		planned[t] = true
	}

	group := ""
	for i, s := range specs {
		if s.Group != "" && s.Group != group {
			group = s.Group
			fmt.Fprintln(f.out, color.CyanString("%s", group))
		}

		connector := "├── "
		childPrefix := "│   "
		if i == len(specs)-1 {
			connector = "└── "
			childPrefix = "    "
		}

		switch {
		case s.Disabled:
			reason := "disabled"
			if s.Reason != "" {
				reason = "disabled: " + s.Reason
			}
			fmt.Fprintf(f.out, "%s%s %s\n", connector, color.HiBlackString(s.Path), color.YellowString("[%s]", reason))
			continue
		case !planned[s.Target]:
			fmt.Fprintf(f.out, "%s%s %s\n", connector, color.HiBlackString(s.Path), color.HiBlackString("[filtered]"))
			continue
		default:
			fmt.Fprintf(f.out, "%s%s\n", connector, s.Path)
		}

		if !showTestCases {
			continue
		}
		testCases, err := f.parser.FindTestCases(pathOf(s.Target))
		if err != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, color.RedString("(%v)", err))
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, color.RedString("(no test cases found)"))
			continue
		}
		for j, tc := range testCases {
			caseConnector := "├── "
			if j == len(testCases)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", childPrefix, caseConnector, color.YellowString("%s", tc.Name))
		}
	}
	return nil
}

// PrintUntracked prints spec files found on disk that the manifest does not list
func (f *Formatter) PrintUntracked(paths []string) {
	fmt.Fprintln(f.out)
	if len(paths) == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ Every spec file on disk is listed in the manifest"))
		return
	}
	fmt.Fprintln(f.out, color.YellowString("%d spec file(s) not listed in the manifest:", len(paths)))
	for i, p := range paths {
		connector := "├── "
		if i == len(paths)-1 {
			connector = "└── "
		}
		fmt.Fprintf(f.out, "%s%s\n", connector, color.YellowString("%s", p))
	}
}

// PrintRunStats prints the summary table of a stored run and its failures
func (f *Formatter) PrintRunStats(output *domain.RunResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                     Spec Run Statistics                       ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out)

	rows := []statRow{
		{"Suite", meta.Suite, color.WhiteString},
		{"Runner", meta.Runner, color.WhiteString},
		{"Loaded Specs", fmt.Sprint(len(meta.Targets)), color.WhiteString},
		{"Excluded Specs", fmt.Sprint(len(meta.Excluded)), color.YellowString},
		{"Passing", fmt.Sprint(meta.Passed), color.GreenString},
		{"Failing", fmt.Sprint(meta.Failed), color.RedString},
		{"Pending", fmt.Sprint(meta.Pending), color.CyanString},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.WhiteString},
		{"Timestamp", meta.Timestamp, color.WhiteString},
	}
	if meta.TimedOut {
		rows = append(rows, statRow{"Timed Out", "yes", color.RedString})
	}
	f.printTable(rows)

	if meta.FailDump != "" {
		fmt.Fprintf(f.out, "Runner output saved to %s\n\n", color.YellowString("%s", meta.FailDump))
	}

	if meta.Success && meta.Failed == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All specs passed!"))
		return
	}
	fmt.Fprintln(f.out, color.RedString("✗ %d test case(s) failed", max(meta.Failed, len(output.Details))))
	for _, failure := range output.Details {
		title := failure.TestName
		if failure.Suite != "" {
			title = failure.Suite + " › " + title
		}
		fmt.Fprintf(f.out, "  %s %s\n", color.RedString("%d)", failure.Number), title)
		if failure.Message != "" {
			fmt.Fprintf(f.out, "     %s\n", color.HiBlackString("%s", strings.SplitN(failure.Message, "\n", 2)[0]))
		}
	}
}

// PrintBenchStats prints the summary table of a bench and one line per iteration
func (f *Formatter) PrintBenchStats(output *domain.BenchOutput) {
	sum := output.Summary

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                    Spec Bench Statistics                      ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out)

	f.printTable([]statRow{
		{"Suite", output.Suite, color.WhiteString},
		{"Specs", fmt.Sprint(len(output.Targets)), color.WhiteString},
		{"Runs", fmt.Sprint(sum.Runs), color.WhiteString},
		{"Succeeded", fmt.Sprint(sum.Succeeded), color.GreenString},
		{"Failed", fmt.Sprint(sum.Failed), color.RedString},
		{"Timed Out", fmt.Sprint(sum.TimedOut), color.YellowString},
		{"Timeout", output.Timeout, color.WhiteString},
		{"Min", fmt.Sprintf("%.2fs", sum.MinSeconds), color.WhiteString},
		{"Mean", fmt.Sprintf("%.2fs", sum.MeanSeconds), color.WhiteString},
		{"Max", fmt.Sprintf("%.2fs", sum.MaxSeconds), color.WhiteString},
	})

	for _, r := range output.Runs {
		status := color.GreenString("✓")
		switch {
		case r.TimedOut:
			status = color.YellowString("⏱")
		case !r.Success:
			status = color.RedString("✗")
		}
		line := fmt.Sprintf("  %s run %d: %.2fs", status, r.Iteration, r.DurationSeconds)
		if r.FailDump != "" {
			line += color.HiBlackString(" (%s)", r.FailDump)
		}
		fmt.Fprintln(f.out, line)
	}
}

type statRow struct {
	label string
	value string
	paint func(format string, a ...interface{}) string
}

func (f *Formatter) printTable(rows []statRow) {
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.paint("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)
}
