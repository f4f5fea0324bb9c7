package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"specrun/internal/domain"
)

// maxDumpsPerSecond bounds the numbered variants tried when dump names collide
const maxDumpsPerSecond = 100

// DumpFailure writes the output of a failed run to FAIL_DUMP_<timestamp>.txt
// next to the results file and returns the path written.
func (s *JSONStorage) DumpFailure(result domain.RunResult) (string, error) {
	dir := s.cfg.GetOutputDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(s.cfg.GetFailDumpPath(time.Now()), ".txt")
	for i := 1; i <= maxDumpsPerSecond; i++ {
		path := base + ".txt"
		if i > 1 {
			path = fmt.Sprintf("%s_%d.txt", base, i)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create fail dump: %w", err)
		}
		_, werr := f.WriteString(formatDump(result))
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return "", fmt.Errorf("write fail dump %s: %w", path, werr)
		}
		return path, nil
	}
	return "", fmt.Errorf("create fail dump: %d dumps already written for %s", maxDumpsPerSecond, base)
}

func formatDump(result domain.RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "runner: %s\n", result.Runner)
	fmt.Fprintf(&b, "duration: %s\n", result.Duration)
	if result.TimedOut {
		b.WriteString("timed out: true\n")
	}
	if result.Error != nil {
		fmt.Fprintf(&b, "error: %v\n", result.Error)
	}
	b.WriteString("targets:\n")
	for _, t := range result.Targets {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	b.WriteString("\n")
	b.WriteString(result.Output)
	return b.String()
}
