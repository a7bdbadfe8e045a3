package makegen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qobs-build/tr2make/internal/config"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var ErrIO = errors.New("i/o error")

// Status says what Write did to the Makefile on disk
type Status int

const (
	Created Status = iota
	Unchanged
	Updated
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Unchanged:
		return "unchanged"
	case Updated:
		return "updated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// LineChange is a single added or removed line of an updated Makefile
type LineChange struct {
	Added bool
	Line  string
}

type Report struct {
	Path    string
	Status  Status
	Changes []LineChange // only set for Updated
}

// Added returns the number of added lines
func (r *Report) Added() int {
	n := 0
	for _, c := range r.Changes {
		if c.Added {
			n++
		}
	}
	return n
}

// Removed returns the number of removed lines
func (r *Report) Removed() int { return len(r.Changes) - r.Added() }

func lineDiff(before, after string) []LineChange {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var changes []LineChange
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			changes = append(changes, LineChange{Added: d.Type == diffmatchpatch.DiffInsert, Line: line})
		}
	}
	return changes
}

// Write renders the plan into <root>/<plan.BuildDir>/Makefile, creating directories as needed.
// An existing Makefile with identical content is left untouched.
func Write(root string, plan *Plan) (*Report, error) {
	dir := filepath.Join(root, filepath.FromSlash(plan.BuildDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	content := []byte(plan.Render())
	report := &Report{Path: filepath.Join(root, filepath.FromSlash(plan.ScriptPath())), Status: Created}

	old, err := os.ReadFile(report.Path)
	switch {
	case err == nil && bytes.Equal(old, content):
		report.Status = Unchanged
		return report, nil
	case err == nil:
		report.Status = Updated
		report.Changes = lineDiff(string(old), string(content))
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := os.WriteFile(report.Path, content, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return report, nil
}

// Generate runs the whole pipeline for one mode: derive, render, write
func Generate(root string, cfg *config.ProjectConfig, mode config.Mode, platform Platform) (*Report, error) {
	plan, err := Derive(cfg, mode, platform)
	if err != nil {
		return nil, err
	}
	return Write(root, plan)
}
