package ui

import (
	"fmt"
	"io"
)

// Printer writes prefixed, theme-colored status lines for CLI commands.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a success message
func (p *Printer) Success(message string) {
	styles := defaultThemeManager.GetStyles()
	fmt.Fprintf(p.w, "%s %s\n", styles.StatusOk.Render("[SUCCESS]"), message)
}

// Error prints an error message
func (p *Printer) Error(message string) {
	styles := defaultThemeManager.GetStyles()
	fmt.Fprintf(p.w, "%s %s\n", styles.StatusError.Render("[ERROR]"), message)
}

// Info prints an info message
func (p *Printer) Info(message string) {
	styles := defaultThemeManager.GetStyles()
	fmt.Fprintf(p.w, "%s %s\n", styles.StatusInfo.Render("[INFO]"), message)
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	styles := defaultThemeManager.GetStyles()
	fmt.Fprintf(p.w, "%s %s\n", styles.StatusWarning.Render("[WARNING]"), message)
}

// Subtle prints a muted message
func (p *Printer) Subtle(message string) {
	fmt.Fprintln(p.w, defaultThemeManager.GetStyles().Annotation.Render(message))
}

// FormatValue highlights a value in output
func FormatValue(value string) string {
	return defaultThemeManager.GetStyles().StatusInfo.Render(value)
}

// FormatLabel formats a label
func FormatLabel(label string) string {
	return defaultThemeManager.GetStyles().Annotation.Render(label)
}
