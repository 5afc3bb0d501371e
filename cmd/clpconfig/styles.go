// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/clp-go/clp/internal/config"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles, secondary text, and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states, checkmarks, and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors, failures, and negative outcomes.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings, caution states, and attention-needed items.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for flag names, backend names and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Base styles - reusable lipgloss styles built from the color palette.
var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for flag names, backend names and commands.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// terminalStyle decides whether output to w is styled and which glamour
// style renders issue guidance. Output that is not a terminal, or a "none"
// color scheme, is never styled.
func terminalStyle(w io.Writer, scheme config.ColorScheme) (styled bool, glamourStyle string) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) || scheme == config.ColorSchemeNone {
		return false, "notty"
	}
	switch scheme {
	case config.ColorSchemeDark:
		return true, "dark"
	case config.ColorSchemeLight:
		return true, "light"
	}
	if lipgloss.HasDarkBackground() {
		return true, "dark"
	}
	return true, "light"
}
