package pretty

import (
	"os"
	"strings"
)

// ColorMode is the level of color support the terminal advertises.
type ColorMode int

const (
	ColorModeNone ColorMode = iota
	ColorModeBasic
	ColorMode256
	ColorModeTrueColor
)

func (it ColorMode) String() string {
	switch it {
	case ColorModeBasic:
		return "basic"
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	default:
		return "none"
	}
}

// DetectColorMode checks NO_COLOR, COLORTERM and TERM, in that order.
func DetectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorModeNone
	}
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return ColorModeNone
	}
	if strings.Contains(term, "256color") {
		return ColorMode256
	}
	return ColorModeBasic
}
