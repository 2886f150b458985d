package colorutil

import (
	"errors"
	"strconv"
	"strings"
)

// Text colors returned by ContrastText.
const (
	LightThemeDarkText  = "#333333"
	LightThemeLightText = "#FFFFFF"
	DarkThemeDarkText   = "#111111"
	DarkThemeLightText  = "#F5F5F5"

	// fallbacks for unparseable backgrounds
	LightThemeDefault = "#1A1A1A"
	DarkThemeDefault  = "#F0F0F0"
)

const luminanceThreshold = 128.0

var ErrInvalidHex = errors.New("color must be a 3 or 6 digit hex value")

// ThemeContext carries the theme the caller renders with.
type ThemeContext struct {
	Dark bool
}

func LightTheme() ThemeContext { return ThemeContext{} }
func DarkTheme() ThemeContext  { return ThemeContext{Dark: true} }

// ParseTheme maps "dark" (any case) to the dark theme and anything else to light.
func ParseTheme(s string) ThemeContext {
	return ThemeContext{Dark: strings.EqualFold(strings.TrimSpace(s), "dark")}
}

func (t ThemeContext) Name() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

// Default is the text color used when the background cannot be parsed.
func (t ThemeContext) Default() string {
	if t.Dark {
		return DarkThemeDefault
	}
	return LightThemeDefault
}

// ParseHex parses "#RGB", "RGB", "#RRGGBB" or "RRGGBB".
func ParseHex(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, ErrInvalidHex
	}

	v, perr := strconv.ParseUint(s, 16, 32)
	if perr != nil {
		return 0, 0, 0, ErrInvalidHex
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Luminance is the perceived brightness 0.299R + 0.587G + 0.114B on 0-255 channels.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// IsValidHex reports whether hex parses as a color.
func IsValidHex(hex string) bool {
	_, _, _, err := ParseHex(hex)
	return err == nil
}

// ContrastText picks a legible foreground for the background hex color.
func ContrastText(hex string, theme ThemeContext) string {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return theme.Default()
	}

	bright := Luminance(r, g, b) > luminanceThreshold
	switch {
	case theme.Dark && bright:
		return DarkThemeDarkText
	case theme.Dark:
		return DarkThemeLightText
	case bright:
		return LightThemeDarkText
	default:
		return LightThemeLightText
	}
}
