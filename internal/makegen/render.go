package makegen

import "strings"

func write(sb *strings.Builder, s ...string) {
	for _, str := range s {
		sb.WriteString(str)
	}
}

func writeln(sb *strings.Builder, s ...string) {
	write(sb, s...)
	sb.WriteByte('\n')
}

// Render produces the Makefile text for the plan. The layout, and the rule names all, clean and
// create_dirs in particular, is relied on by callers of the generated Makefile.
func (p *Plan) Render() string {
	var sb strings.Builder

	writeln(&sb, "# ", strings.ToUpper(p.Language.String()), " Project Makefile")
	writeln(&sb, "CC := ", p.Compiler)
	writeln(&sb, "SRC := ", strings.Join(p.Sources, " "))
	writeln(&sb, "TARGET := ", p.BuildDir, "/", p.Target)
	writeln(&sb, "STD := ", p.StdFlag)
	writeln(&sb, "ARCH := ", p.Arch)
	writeln(&sb, "DEBUG := ", p.DebugFlag)
	writeln(&sb)

	writeln(&sb, "OBJ_DIR := ", p.BuildDir, "/obj")
	writeln(&sb, "OBJ := $(addprefix $(OBJ_DIR)/, $(SRC:", p.Ext, "=.o))")
	writeln(&sb)

	writeln(&sb, "CFLAGS := ", p.OptFlags, " -std=$(STD) ", p.ArchFlag)
	writeln(&sb, "LDFLAGS := ", p.ArchFlag)
	writeln(&sb)

	// rules
	writeln(&sb, "all: create_dirs $(TARGET)")
	writeln(&sb)
	writeln(&sb, "$(TARGET): $(OBJ)")
	writeln(&sb, "\t$(CC) $^ -o $@ $(LDFLAGS)")
	writeln(&sb)
	writeln(&sb, "$(OBJ_DIR)/%.o: %", p.Ext)
	writeln(&sb, "\t", p.Platform.MkdirCmd)
	writeln(&sb, "\t$(CC) $(CFLAGS) -c $< -o $@")
	writeln(&sb)
	writeln(&sb, "create_dirs:")
	writeln(&sb, "\t", p.Platform.MkdirCmd)
	writeln(&sb)
	writeln(&sb, "clean:")
	writeln(&sb, "\t", p.Platform.CleanCmd)
	writeln(&sb)
	writeln(&sb, ".PHONY: all clean create_dirs")

	return sb.String()
}
