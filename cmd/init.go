// tr2make init [name]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/qobs-build/tr2make/internal/config"
	"github.com/qobs-build/tr2make/internal/msg"
	"github.com/spf13/cobra"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Fatal("create file %s: %v", path, err)
		}
		fmt.Fprintf(msg.Stdout, "%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	} else {
		msg.Warn("%s already exists, leaving it alone", filepath.ToSlash(path))
	}
}

func getProgramName() string {
	if len(os.Args) == 0 {
		return "tr2make"
	}
	basename := filepath.Base(os.Args[0])
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

func projectFile(name string, lang config.Language, mainFile string) string {
	return `language: ` + lang.String() + `
standard: 17
files:
  - ` + mainFile + `
target: ` + strconv.Quote(name) + `
architecture: x64
model:
  debug:
    targetdir: build/debug
  release:
    targetdir: build/release
`
}

// initIn scaffolds a project in an existing directory
func initIn(dir, name string, lang config.Language) {
	mainFile := "main.c"
	if lang == config.LangCXX {
		mainFile = "main.cpp"
	}

	writefile(projectFile(name, lang, mainFile), dir, config.YAMLFilename)

	if lang == config.LangCXX {
		writefile(`#include <iostream>

int main() {
    std::cout << "Hello, World!" << std::endl;
    return 0;
}
`, dir, mainFile)
	} else {
		writefile(`#include <stdio.h>

int main(void) {
    puts("Hello, World!");
    return 0;
}
`, dir, mainFile)
	}

	// .gitignore
	writefile(`build/
`, dir, ".gitignore")

	programName := getProgramName()
	fmt.Fprintf(msg.Stdout, "You can now do %s to generate build/debug-x64/Makefile, then %s to build.\n",
		color.HiCyanString(programName), color.HiCyanString("make -f build/debug-x64/Makefile"))
}

var flagLang = NewEnumValue("c", map[string]string{
	"c":   "C project (gcc)",
	"c++": "C++ project (g++)",
})

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a .tr2make project in the current directory",
	Long:  `Create a .tr2make project in the current directory. If no name is given, the directory name is used.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lang, err := config.ParseLanguage(flagLang.Value())
		if err != nil {
			msg.Fatal("%v", err)
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				msg.Fatal("could not get current directory: %v", err)
			}
			name = filepath.Base(cwd)
		}
		initIn(".", name, lang)
	},
}

func init() {
	// tr2make init subcommand
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().VarP(&flagLang, "lang", "l", "Project language, one of "+flagLang.HelpString())
	initCmd.RegisterFlagCompletionFunc("lang", flagLang.CompletionFunc())
}
