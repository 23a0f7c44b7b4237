// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode controls whether text output is highlighted.
type ColorMode string

const (
	// ColorAuto highlights only when the output is a terminal and
	// NO_COLOR is unset.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode resolves a color mode name. Empty means auto.
func ParseColorMode(name string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(name))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always, or never)", name)
}

// Palette returns the chroma formatter name for highlighting output
// written to out, or "" when output should stay plain. Under
// [ColorAuto] only an *os.File attached to a terminal is highlighted.
func Palette(mode ColorMode, out io.Writer) string {
	if mode == ColorNever {
		return ""
	}
	output := termenv.NewOutput(out)
	if mode == ColorAlways {
		return formatterFor(output.EnvColorProfile(), true)
	}
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) || output.EnvNoColor() {
		return ""
	}
	return formatterFor(output.EnvColorProfile(), false)
}

// formatterFor maps a terminal color profile to a chroma formatter.
// When forced, a profile without color support still gets 256 colors.
func formatterFor(profile termenv.Profile, forced bool) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	}
	if forced {
		return "terminal256"
	}
	return ""
}
