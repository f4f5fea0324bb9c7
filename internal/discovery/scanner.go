package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner scans for spec files in a directory
type Scanner struct {
	suffix   string
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner matching files ending in suffix, skipping the given directories
func NewScanner(suffix string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{suffix: suffix, skipDirs: skipMap}
}

// Scan finds all spec files in the given root directory, sorted
func (s *Scanner) Scan(root string) ([]string, error) {
	var specFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("spec path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("spec path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), s.suffix) {
			specFiles = append(specFiles, path)
		}
		return nil
	})

	sort.Strings(specFiles)
	return specFiles, err
}

// Untracked returns the scanned files that are not in tracked; both are compared as cleaned paths
func Untracked(scanned, tracked []string) []string {
	known := make(map[string]bool, len(tracked))
	for _, t := range tracked {
		known[filepath.Clean(t)] = true
	}
	var out []string
	for _, s := range scanned {
		if !known[filepath.Clean(s)] {
			out = append(out, s)
		}
	}
	return out
}
