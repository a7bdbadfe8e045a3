package config

import (
	"errors"
	"fmt"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is a source language tr2make knows how to compile
type Language int

const (
	LangC Language = iota + 1
	LangCXX
)

// ParseLanguage maps the `language` field onto a Language
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "c":
		return LangC, nil
	case "c++":
		return LangCXX, nil
	}
	return 0, fmt.Errorf("%w %q (expected c or c++)", ErrUnsupportedLanguage, s)
}

func (l Language) String() string {
	switch l {
	case LangC:
		return "c"
	case LangCXX:
		return "c++"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// Mode is the build mode selected on the command line. It is never read from the project file.
type Mode int

const (
	Debug Mode = iota
	Release
)

var modeNames = map[Mode]string{
	Debug:   "debug",
	Release: "release",
}

// Modes returns all build modes in declaration order
func Modes() []Mode { return []Mode{Debug, Release} }

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if modeNames[m] == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown build mode %q (expected debug or release)", s)
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
