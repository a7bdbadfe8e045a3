// tr2make [debug|release], tr2make --model <mode>
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/qobs-build/tr2make/internal/config"
	"github.com/qobs-build/tr2make/internal/makegen"
	"github.com/qobs-build/tr2make/internal/msg"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var flagModel = NewEnumValue("debug", map[string]string{
	"debug":   "Debug symbols, no optimization, DEBUG defined (default)",
	"release": "Optimized build",
})

// selectMode resolves the build mode from the optional positional argument and --model
func selectMode(cmd *cobra.Command, args []string) (config.Mode, error) {
	if len(args) > 0 {
		if cmd.Flags().Changed("model") && args[0] != flagModel.Value() {
			return 0, fmt.Errorf("conflicting build modes %q (argument) and %q (--model)", args[0], flagModel.Value())
		}
		if err := flagModel.Set(args[0]); err != nil {
			return 0, fmt.Errorf("invalid build mode %q: %w", args[0], err)
		}
	}
	return config.ParseMode(flagModel.Value())
}

// generateIn loads the project in dir and writes the Makefile for mode
func generateIn(dir string, mode config.Mode, platform makegen.Platform) (*makegen.Report, error) {
	cfg, err := config.Load(dir, config.NewEnv(mode))
	if err != nil {
		return nil, err
	}
	return makegen.Generate(dir, cfg, mode, platform)
}

func printReport(r *makegen.Report) {
	switch r.Status {
	case makegen.Unchanged:
		msg.Info("%s is up to date", r.Path)
	case makegen.Updated:
		msg.Info("%s changed (+%d -%d lines)", r.Path, r.Added(), r.Removed())
		w := &msg.IndentWriter{Indent: "    ", W: msg.Stdout}
		for _, c := range r.Changes {
			if c.Added {
				fmt.Fprintln(w, color.GreenString("+ %s", c.Line))
			} else {
				fmt.Fprintln(w, color.RedString("- %s", c.Line))
			}
		}
	}
	fmt.Fprintf(msg.Stdout, "Makefile generated at: %s\n", r.Path)
}

func doGenerate(cmd *cobra.Command, args []string) {
	mode, err := selectMode(cmd, args)
	if err != nil {
		msg.Fatal("%v", err)
	}
	report, err := generateIn(".", mode, makegen.HostPlatform())
	if err != nil {
		msg.Fatal("%v", err)
	}
	printReport(report)
}

var rootCmd = &cobra.Command{
	Use:   "tr2make [debug|release]",
	Short: "Generate a Makefile from a .tr2make project file",
	Long: `Generate a Makefile from the .tr2make (or tr2make.toml) project file in the current directory.
The Makefile is written to build/<mode>-<architecture>/Makefile.`,
	Version:       version,
	Args:          cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs:     flagModel.AllowedKeys(),
	SilenceErrors: true,
	Run:           doGenerate,
}

func init() {
	rootCmd.Flags().VarP(&flagModel, "model", "m", "Build mode, one of "+flagModel.HelpString())
	rootCmd.RegisterFlagCompletionFunc("model", flagModel.CompletionFunc())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg.Error("%v", err)
		os.Exit(1)
	}
}
