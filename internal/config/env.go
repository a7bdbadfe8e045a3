package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
)

// Env is the environment visible to {{...}} expressions in the project file
type Env struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Environ    map[string]string `expr:"environ"`
	Mode       string            `expr:"mode"`
}

func NewEnv(mode Mode) Env {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if i := strings.Index(e, "="); i >= 0 {
			environ[e[:i]] = e[i+1:]
		}
	}

	return Env{
		TargetOS:   runtime.GOOS,
		TargetArch: runtime.GOARCH,
		Environ:    environ,
		Mode:       mode.String(),
	}
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// interpolate replaces every {{...}} segment of s with the value of its expression
func (env Env) interpolate(s string) (string, error) {
	return replaceAllErr(exprRegex, s, func(expression string) (string, error) {
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("compile %q: %w", expression, err)
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("run %q: %w", expression, err)
		}
		return fmt.Sprint(result), nil
	})
}

// replaceAllErr is regexp.ReplaceAllStringFunc with access to the first group and error propagation
func replaceAllErr(re *regexp.Regexp, s string, fn func(group string) (string, error)) (string, error) {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		repl, err := fn(strings.TrimSpace(s[m[2]:m[3]]))
		if err != nil {
			return "", err
		}
		sb.WriteString(s[last:m[0]])
		sb.WriteString(repl)
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

// expandTable interpolates every string below tbl in place. Errors name the field path
// (model.debug.targetdir, files[2]) like the schema errors do; keys are visited in sorted order.
func (env Env) expandTable(tbl map[string]any, prefix string) error {
	keys := make([]string, 0, len(tbl))
	for k := range tbl {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		v, err := env.expandValue(tbl[k], path)
		if err != nil {
			return err
		}
		tbl[k] = v
	}
	return nil
}

func (env Env) expandValue(v any, path string) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return v, env.expandTable(v, path)
	case []any:
		for i, item := range v {
			expanded, err := env.expandValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			v[i] = expanded
		}
		return v, nil
	case string:
		s, err := env.interpolate(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", path, err)
		}
		return s, nil
	}
	return v, nil
}
