package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrConfig = errors.New("configuration error")

const (
	YAMLFilename = ".tr2make"
	TOMLFilename = "tr2make.toml"
)

// Format is the syntax of a project file
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// candidates are the conventional project file locations, in lookup order
var candidates = []struct {
	name   string
	format Format
}{
	{YAMLFilename, FormatYAML},
	{TOMLFilename, FormatTOML},
}

// Standard is the numeric language standard (11, 17, 20, ...) in its canonical textual form
type Standard string

// ModelConfig is one entry of the `model` table
type ModelConfig struct {
	TargetDir string
}

// ProjectConfig is the validated project description
type ProjectConfig struct {
	// Language is kept verbatim, see ParseLanguage
	Language     string
	Standard     Standard
	Files        []string
	Target       string
	Architecture string
	Model        map[Mode]ModelConfig
	// Source is the file the config was loaded from, empty when parsed from a reader
	Source string
}

func configErr(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...))
}

// Load finds the project file in dir and parses it
func Load(dir string, env Env) (*ProjectConfig, error) {
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, configErr("%v", err)
		}
		defer f.Close()

		cfg, err := Parse(bufio.NewReader(f), c.format, dir, env)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Source = path
		return cfg, nil
	}
	return nil, configErr("no %s or %s found in %s", YAMLFilename, TOMLFilename, dir)
}

// Parse decodes and validates a project file. Glob patterns in `files` are resolved relative to basedir.
func Parse(rdr io.Reader, format Format, basedir string, env Env) (*ProjectConfig, error) {
	raw, err := decode(rdr, format)
	if err != nil {
		return nil, err
	}

	if err := env.expandTable(raw, ""); err != nil {
		return nil, configErr("%v", err)
	}

	cfg, err := fromTree(raw)
	if err != nil {
		return nil, err
	}

	// only the selected mode needs an entry, the other one may be absent
	if env.Mode != "" {
		mode, err := ParseMode(env.Mode)
		if err != nil {
			return nil, configErr("%v", err)
		}
		if _, ok := cfg.Model[mode]; !ok {
			return nil, configErr("missing required field %q", "model."+mode.String())
		}
	}

	if cfg.Files, err = expandFiles(basedir, cfg.Files); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(rdr io.Reader, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.NewDecoder(rdr).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, configErr("empty project file")
			}
			return nil, configErr("%v", err)
		}
		if err := doc.Decode(&raw); err != nil {
			return nil, configErr("%v", err)
		}
		keepNumberLiteral(&doc, raw, "standard")
	case FormatTOML:
		if err := toml.NewDecoder(rdr).Decode(&raw); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				return nil, configErr("%s", derr.String())
			}
			return nil, configErr("%v", err)
		}
	default:
		return nil, configErr("unknown format %d", format)
	}
	if raw == nil {
		return nil, configErr("empty project file")
	}
	return raw, nil
}

// number is a numeric scalar kept exactly as written in the document
type number string

// keepNumberLiteral replaces a decoded top-level number with its source text, so 17.0 stays 17.0
func keepNumberLiteral(doc *yaml.Node, raw map[string]any, key string) {
	if raw == nil || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Value != key || v.Kind != yaml.ScalarNode {
			continue
		}
		if tag := v.ShortTag(); tag == "!!int" || tag == "!!float" {
			raw[key] = number(v.Value)
		}
	}
}

func fromTree(raw map[string]any) (*ProjectConfig, error) {
	var (
		cfg = new(ProjectConfig)
		err error
	)

	if cfg.Language, err = stringField(raw, "language", "language"); err != nil {
		return nil, err
	}
	if cfg.Standard, err = standardField(raw); err != nil {
		return nil, err
	}
	if cfg.Files, err = stringListField(raw, "files"); err != nil {
		return nil, err
	}
	if cfg.Target, err = nonEmptyStringField(raw, "target"); err != nil {
		return nil, err
	}
	if cfg.Architecture, err = nonEmptyStringField(raw, "architecture"); err != nil {
		return nil, err
	}
	if cfg.Model, err = modelField(raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lookup(tbl map[string]any, key, path string) (any, error) {
	v, ok := tbl[key]
	if !ok || v == nil {
		return nil, configErr("missing required field %q", path)
	}
	return v, nil
}

func mistyped(path, want string, got any) error {
	return configErr("field %q must be %s, got %T", path, want, got)
}

func stringField(tbl map[string]any, key, path string) (string, error) {
	v, err := lookup(tbl, key, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", mistyped(path, "a string", v)
	}
	return s, nil
}

func nonEmptyStringField(tbl map[string]any, key string) (string, error) {
	s, err := stringField(tbl, key, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", configErr("field %q must not be empty", key)
	}
	return s, nil
}

func standardField(tbl map[string]any) (Standard, error) {
	v, err := lookup(tbl, "standard", "standard")
	if err != nil {
		return "", err
	}
	switch n := v.(type) {
	case number:
		return Standard(n), nil
	case int:
		return Standard(strconv.Itoa(n)), nil
	case int64:
		return Standard(strconv.FormatInt(n, 10)), nil
	case uint64:
		return Standard(strconv.FormatUint(n, 10)), nil
	case float64:
		s := strconv.FormatFloat(n, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return Standard(s), nil
	}
	return "", mistyped("standard", "a number", v)
}

func stringListField(tbl map[string]any, key string) ([]string, error) {
	v, err := lookup(tbl, key, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, mistyped(key, "a list of strings", v)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, mistyped(fmt.Sprintf("%s[%d]", key, i), "a string", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func modelField(tbl map[string]any) (map[Mode]ModelConfig, error) {
	v, err := lookup(tbl, "model", "model")
	if err != nil {
		return nil, err
	}
	models, ok := v.(map[string]any)
	if !ok {
		return nil, mistyped("model", "a table", v)
	}
	if len(models) == 0 {
		return nil, configErr("field %q needs a debug or release entry", "model")
	}

	keys := make([]string, 0, len(models))
	for k := range models {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[Mode]ModelConfig, len(models))
	for _, name := range keys {
		mode, err := ParseMode(name)
		if err != nil {
			return nil, configErr("model.%s: %v", name, err)
		}
		path := "model." + name
		entry, ok := models[name].(map[string]any)
		if !ok {
			return nil, mistyped(path, "a table", models[name])
		}
		dir, err := stringField(entry, "targetdir", path+".targetdir")
		if err != nil {
			return nil, err
		}
		out[mode] = ModelConfig{TargetDir: dir}
	}
	return out, nil
}
