// Package theme resolves whether output should use a dark or light palette.
package theme

import (
	"log/slog"
	"strings"

	darkmode "github.com/thiagokokada/dark-mode-go"
)

type Preference int

const (
	Auto Preference = iota
	Light
	Dark
)

var detectDarkMode = darkmode.IsDarkMode

func (p Preference) String() string {
	switch p {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "auto"
	}
}

// ParsePreference maps "light" and "dark"; anything else is Auto.
func ParsePreference(raw string) Preference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case Dark.String():
		return Dark
	case Light.String():
		return Light
	default:
		return Auto
	}
}

// IsDark resolves p. Auto asks the desktop environment and falls back to
// light when detection fails.
func (p Preference) IsDark() bool {
	switch p {
	case Dark:
		return true
	case Light:
		return false
	}
	if detectDarkMode == nil {
		return false
	}
	dark, err := detectDarkMode()
	if err != nil {
		slog.Debug("detect dark mode", slog.Any("error", err))
		return false
	}
	return dark
}
