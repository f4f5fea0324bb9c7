// Package manifest holds curated lists of browser UI spec files.
//
// A manifest is an ordered list of spec paths relative to a single base
// path. Entries are never removed to exclude them; they are marked
// disabled, so the exclusion and its reason survive into listings and
// stored results.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"specrun/internal/domain"
)

var (
	// ErrEmptyPath is returned by Validate for blank entries or empty resolved targets
	ErrEmptyPath = errors.New("empty spec path")
	// ErrDuplicate is returned by Validate when a spec path is listed more than once
	ErrDuplicate = errors.New("duplicate spec path")
	// ErrEmptyBasePath is returned by Validate when the manifest has no base path.
	// Entries start with a separator, so an empty base would resolve them from the filesystem root.
	ErrEmptyBasePath = errors.New("empty base path")
)

// Manifest is an immutable, ordered list of specs sharing one base path
type Manifest struct {
	name     string
	basePath string
	specs    []domain.Spec
}

// New creates a Manifest. Targets are computed from basePath; the specs slice is copied.
func New(name, basePath string, specs []domain.Spec) *Manifest {
	m := &Manifest{
		name:     name,
		basePath: basePath,
		specs:    make([]domain.Spec, len(specs)),
	}
	for i, s := range specs {
		s.Target = m.Resolve(s.Path)
		m.specs[i] = s
	}
	return m
}

// Name returns the suite name
func (m *Manifest) Name() string {
	return m.name
}

// BasePath returns the prefix shared by every entry
func (m *Manifest) BasePath() string {
	return m.basePath
}

// Resolve joins the base path and an entry path.
// This is plain concatenation: entries carry their own leading separator.
func (m *Manifest) Resolve(path string) string {
	return m.basePath + path
}

// Specs returns every entry, enabled or not, in declared order
func (m *Manifest) Specs() []domain.Spec {
	out := make([]domain.Spec, len(m.specs))
	copy(out, m.specs)
	return out
}

// Active returns the enabled entries in declared order
func (m *Manifest) Active() []domain.Spec {
	var out []domain.Spec
	for _, s := range m.specs {
		if !s.Disabled {
			out = append(out, s)
		}
	}
	return out
}

// Excluded returns the disabled entries in declared order
func (m *Manifest) Excluded() []domain.Spec {
	var out []domain.Spec
	for _, s := range m.specs {
		if s.Disabled {
			out = append(out, s)
		}
	}
	return out
}

// Targets returns the resolved paths of the active entries, in order
func (m *Manifest) Targets() []string {
	active := m.Active()
	targets := make([]string, 0, len(active))
	for _, s := range active {
		targets = append(targets, s.Target)
	}
	return targets
}

// Validate reports a missing base path, blank entries and duplicate entries.
// All violations are returned joined; use errors.Is with ErrEmptyBasePath, ErrEmptyPath or ErrDuplicate.
func (m *Manifest) Validate() error {
	var errs []error
	seen := make(map[string]int, len(m.specs))

	if strings.TrimSpace(m.basePath) == "" {
		errs = append(errs, fmt.Errorf("suite %q: %w", m.name, ErrEmptyBasePath))
	}

	for i, s := range m.specs {
		if strings.TrimSpace(s.Path) == "" || s.Target == "" {
			errs = append(errs, fmt.Errorf("entry %d: %w", i+1, ErrEmptyPath))
			continue
		}
		if first, ok := seen[s.Path]; ok {
			errs = append(errs, fmt.Errorf("entry %d: %w %s (first listed as entry %d)", i+1, ErrDuplicate, s.Path, first))
			continue
		}
		seen[s.Path] = i + 1
	}

	return errors.Join(errs...)
}
