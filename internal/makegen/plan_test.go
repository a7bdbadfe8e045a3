package makegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qobs-build/tr2make/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var posix = PlatformFor("linux")

func exampleConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Language:     "c",
		Standard:     "17",
		Files:        []string{"a.c", "b.cpp", "c.c"},
		Target:       "app",
		Architecture: "x64",
		Model:        map[config.Mode]config.ModelConfig{config.Debug: {TargetDir: "out"}},
	}
}

func TestDerive_Example(t *testing.T) {
	plan, err := Derive(exampleConfig(), config.Debug, posix)
	require.NoError(t, err)

	want := &Plan{
		Language:  config.LangC,
		Mode:      config.Debug,
		Ext:       ".c",
		Compiler:  "gcc",
		StdFlag:   "c17",
		Sources:   []string{"a.c", "c.c"},
		Target:    "app",
		BuildDir:  "build/debug-x64",
		Arch:      "x64",
		ArchFlag:  "-m64",
		OptFlags:  "-g -O0 -DDEBUG",
		DebugFlag: "1",
		Platform:  posix,
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "build/debug-x64/Makefile", plan.ScriptPath())
}

func TestDerive_Languages(t *testing.T) {
	tests := []struct {
		lang         string
		wantCompiler string
		wantExt      string
		wantStd      string
		wantSources  []string
	}{
		{"c", "gcc", ".c", "c17", []string{"a.c", "c.c"}},
		{"c++", "g++", ".cpp", "c++17", []string{"b.cpp"}},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			cfg := exampleConfig()
			cfg.Language = tt.lang

			plan, err := Derive(cfg, config.Release, posix)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompiler, plan.Compiler)
			assert.Equal(t, tt.wantExt, plan.Ext)
			assert.Equal(t, tt.wantStd, plan.StdFlag)
			assert.Equal(t, tt.wantSources, plan.Sources)
		})
	}
}

func TestDerive_UnsupportedLanguage(t *testing.T) {
	for _, lang := range []string{"rust", "C", "cpp", ""} {
		cfg := exampleConfig()
		cfg.Language = lang
		_, err := Derive(cfg, config.Debug, posix)
		assert.ErrorIs(t, err, config.ErrUnsupportedLanguage, "language %q", lang)
	}
}

func TestDerive_NoSources(t *testing.T) {
	cfg := exampleConfig()
	cfg.Files = []string{"b.cpp", "main.cc", "c.h", "x.c.bak"}
	_, err := Derive(cfg, config.Debug, posix)
	require.ErrorIs(t, err, ErrNoSources)
	assert.Contains(t, err.Error(), ".c")

	cfg.Files = nil
	_, err = Derive(cfg, config.Debug, posix)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestDerive_Architecture(t *testing.T) {
	tests := []struct {
		arch, want string
	}{
		{"x64", "-m64"},
		{"x86", "-m32"},
		{"arm", "-marm"},
		{"foo", "-mfoo"},
	}
	for _, tt := range tests {
		t.Run(tt.arch, func(t *testing.T) {
			cfg := exampleConfig()
			cfg.Architecture = tt.arch

			plan, err := Derive(cfg, config.Debug, posix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.ArchFlag)
			assert.Equal(t, "build/debug-"+tt.arch, plan.BuildDir)
		})
	}
}

func TestDerive_Modes(t *testing.T) {
	debug, err := Derive(exampleConfig(), config.Debug, posix)
	require.NoError(t, err)
	assert.Equal(t, "-g -O0 -DDEBUG", debug.OptFlags)
	assert.Equal(t, "1", debug.DebugFlag)

	release, err := Derive(exampleConfig(), config.Release, posix)
	require.NoError(t, err)
	assert.Equal(t, "-O2", release.OptFlags)
	assert.Equal(t, "0", release.DebugFlag)
	assert.Equal(t, "build/release-x64", release.BuildDir)
}

func TestDerive_WindowsTarget(t *testing.T) {
	plan, err := Derive(exampleConfig(), config.Debug, PlatformFor("windows"))
	require.NoError(t, err)
	assert.Equal(t, "app.exe", plan.Target)
}

func TestPlatformFor(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "freebsd", "plan9"} {
		assert.Equal(t, posixPlatform, PlatformFor(goos), goos)
	}
	win := PlatformFor("windows")
	assert.Equal(t, ".exe", win.ExeSuffix)
	assert.Equal(t, "del /Q $(OBJ) $(TARGET)", win.CleanCmd)
	assert.Equal(t, `@if not exist "$(OBJ_DIR)" mkdir "$(OBJ_DIR)"`, win.MkdirCmd)
}
