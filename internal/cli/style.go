package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
// First value is for dark terminals, second for light terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // purple for column names
)

// Reusable text styles
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleName    = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

// Icons for status messages
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// PrintSuccess prints a success message with a green checkmark.
func PrintSuccess(format string, args ...any) {
	FprintSuccess(os.Stdout, format, args...)
}

// FprintSuccess is PrintSuccess to an arbitrary writer.
func FprintSuccess(w io.Writer, format string, args ...any) {
	icon := StyleSuccess.Render(IconSuccess)
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// PrintError prints an error message with a red X to stderr.
func PrintError(format string, args ...any) {
	FprintError(os.Stderr, format, args...)
}

// FprintError is PrintError to an arbitrary writer.
func FprintError(w io.Writer, format string, args ...any) {
	icon := StyleError.Render(IconError)
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message with an amber icon to stderr.
func PrintWarning(format string, args ...any) {
	FprintWarning(os.Stderr, format, args...)
}

// FprintWarning is PrintWarning to an arbitrary writer.
func FprintWarning(w io.Writer, format string, args ...any) {
	icon := StyleWarning.Render(IconWarning)
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message with a muted arrow.
func PrintInfo(format string, args ...any) {
	FprintInfo(os.Stdout, format, args...)
}

// FprintInfo is PrintInfo to an arbitrary writer.
func FprintInfo(w io.Writer, format string, args ...any) {
	icon := StyleMuted.Render(IconInfo)
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// RenderName renders a column name in accent color.
func RenderName(name string) string {
	return StyleName.Render(name)
}

// RenderMuted renders text in muted color.
func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// RenderBold renders text in bold.
func RenderBold(text string) string {
	return StyleBold.Render(text)
}

// ColorSwatch renders a small color swatch block in the given hex color.
func ColorSwatch(hexColor string) string {
	if hexColor == "" {
		return StyleMuted.Render("██")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render("██")
}
