package makegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qobs-build/tr2make/internal/config"
)

const (
	// BuildRoot is the directory, relative to the project, that receives generated scripts
	BuildRoot  = "build"
	ScriptName = "Makefile"
)

var ErrNoSources = errors.New("no valid source files")

type toolchain struct {
	ext       string
	compiler  string
	stdPrefix string
}

func toolchainFor(lang config.Language) toolchain {
	switch lang {
	case config.LangC:
		return toolchain{ext: ".c", compiler: "gcc", stdPrefix: "c"}
	case config.LangCXX:
		return toolchain{ext: ".cpp", compiler: "g++", stdPrefix: "c++"}
	}
	panic("toolchainFor: unreachable")
}

// archFlag passes unknown architectures through as -m<arch> without checking them
func archFlag(arch string) string {
	switch arch {
	case "x64":
		return "-m64"
	case "x86":
		return "-m32"
	default:
		return "-m" + arch
	}
}

// modeFlags returns the optimization flags and the DEBUG indicator for a mode
func modeFlags(mode config.Mode) (opt, debug string) {
	if mode == config.Debug {
		return "-g -O0 -DDEBUG", "1"
	}
	return "-O2", "0"
}

// Plan is everything the Makefile template needs, derived from a ProjectConfig and a Mode
type Plan struct {
	Language  config.Language
	Mode      config.Mode
	Ext       string
	Compiler  string
	StdFlag   string
	Sources   []string
	Target    string
	BuildDir  string // slash-separated, relative to the project
	Arch      string
	ArchFlag  string
	OptFlags  string
	DebugFlag string
	Platform  Platform
}

// Derive computes the build plan. It touches nothing on disk.
func Derive(cfg *config.ProjectConfig, mode config.Mode, platform Platform) (*Plan, error) {
	lang, err := config.ParseLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}
	tc := toolchainFor(lang)

	var sources []string
	for _, f := range cfg.Files {
		if strings.HasSuffix(f, tc.ext) {
			sources = append(sources, f)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no %s files among %d configured entries", ErrNoSources, tc.ext, len(cfg.Files))
	}

	opt, debug := modeFlags(mode)

	return &Plan{
		Language:  lang,
		Mode:      mode,
		Ext:       tc.ext,
		Compiler:  tc.compiler,
		StdFlag:   tc.stdPrefix + string(cfg.Standard),
		Sources:   sources,
		Target:    cfg.Target + platform.ExeSuffix,
		BuildDir:  BuildRoot + "/" + mode.String() + "-" + cfg.Architecture,
		Arch:      cfg.Architecture,
		ArchFlag:  archFlag(cfg.Architecture),
		OptFlags:  opt,
		DebugFlag: debug,
		Platform:  platform,
	}, nil
}

// ScriptPath is the slash-separated location of the Makefile relative to the project
func (p *Plan) ScriptPath() string {
	return p.BuildDir + "/" + ScriptName
}
