package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const globMeta = "*?[{"

func isPattern(s string) bool { return strings.ContainsAny(s, globMeta) }

// expandFiles replaces every relative glob pattern in files with its matches (files only), in place.
// Literal and absolute entries are kept as written, and so is a pattern-looking entry that names an
// existing file (gen[1].c).
func expandFiles(basedir string, files []string) ([]string, error) {
	if basedir == "" {
		basedir = "."
	}
	fsys := os.DirFS(basedir)
	out := make([]string, 0, len(files))

	for i, f := range files {
		if !isPattern(f) || filepath.IsAbs(f) {
			out = append(out, f)
			continue
		}
		if stat, err := os.Stat(filepath.Join(basedir, f)); err == nil && !stat.IsDir() {
			out = append(out, f)
			continue
		}

		pat := filepath.ToSlash(f)
		if !doublestar.ValidatePattern(pat) {
			return nil, configErr("files[%d]: invalid glob pattern %q", i, f)
		}
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, configErr("files[%d]: while globbing %q: %v", i, f, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}
