// Package scenario loads bundled minefield + script pairs from YAML files.
package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/vovakirdan/minemarker/internal/formats"
	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/orders"
	"github.com/vovakirdan/minemarker/internal/sim"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Scenario is a minefield, the script to run against it and optionally the
// outcome line the run is expected to produce.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Minefield   string
	Script      string
	Expect      string
	Metadata    map[string]string
	FilePath    string
}

// Field parses the scenario's minefield.
func (s *Scenario) Field() (*minefield.Set, error) {
	return formats.ParseMinefield(s.Minefield)
}

// Orders parses the scenario's script.
func (s *Scenario) Orders() (*orders.Orders, error) {
	return formats.ParseScript(s.Script)
}

// Run parses the scenario and simulates it.
func (s *Scenario) Run(opts ...sim.Option) (*sim.Result, error) {
	field, err := s.Field()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: minefield: %w", s.ID, err)
	}
	script, err := s.Orders()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: script: %w", s.ID, err)
	}
	return sim.Mark(field, script, opts...)
}

// Check compares a result against the expected outcome, if any.
func (s *Scenario) Check(result *sim.Result) error {
	if s.Expect == "" {
		return nil
	}
	if got := result.Outcome(); got != s.Expect {
		return fmt.Errorf("scenario %s: got %q, expected %q", s.ID, got, s.Expect)
	}
	return nil
}

// Loader loads scenarios from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS

	// Skipped lists files that were found but could not be parsed during
	// the last LoadAll.
	Skipped []string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the scenarios compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all scenario files.
// Returns scenarios sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario
	l.Skipped = nil

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !slices.Contains(FormatExtensions(), ext) {
			return nil
		}

		s, err := l.LoadFile(p)
		if err != nil {
			l.Skipped = append(l.Skipped, p)
			return nil
		}
		scenarios = append(scenarios, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	slices.SortFunc(scenarios, func(a, b Scenario) int {
		return strings.Compare(a.ID, b.ID)
	})
	return scenarios, nil
}

// LoadFile loads a single scenario file. The path is relative to the
// loader root.
func (l *Loader) LoadFile(p string) (Scenario, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	s, err := ParseYAML(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	s.FilePath = path.Join(l.Root, p)
	return s, nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}

	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario not found: %s", id)
}

// ListIDs returns all scenario IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	return ids, nil
}
