// Package style provides consistent terminal styling using Lipgloss.
// Colors follow the Ayu theme used across the CLI and the watch view.
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Ayu theme color palette
var (
	ColorPass = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorDim  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorInfo = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

// Semantic icons
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✖"
)

var (
	// Success style for positive outcomes (green)
	Success = lipgloss.NewStyle().Foreground(ColorPass).Bold(true)

	// Warning style for cautionary messages (yellow)
	Warning = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)

	// Error style for failures (red)
	Error = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)

	// Info style for informational messages (blue)
	Info = lipgloss.NewStyle().Foreground(ColorInfo)

	// Dim style for secondary information (gray)
	Dim = lipgloss.NewStyle().Foreground(ColorDim)

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// IsTerminal reports whether w is a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ClearScreen is the escape sequence that homes the cursor and clears
// the terminal.
const ClearScreen = "\033[H\033[2J"
