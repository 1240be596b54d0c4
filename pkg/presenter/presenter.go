// Package presenter provides consistent CLI output for user-facing messages,
// conversion reports and diffs, with color support and quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Operation(action, label string)
	Diff(diff string)
	Summary(counts []Count)
	Separator()
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// Count is one entry of a summary line, e.g. 3 created
type Count struct {
	Label string
	N     int
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
}

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto automatically detects whether to use colored output based on terminal capabilities
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output regardless of terminal capabilities
	ColorAlways
	// ColorNever disables colored output regardless of terminal capabilities
	ColorNever
)

// New creates a new TerminalPresenter with default settings
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	presenter := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
	}

	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}

	return presenter
}

// detectColorMode reads NO_COLOR and CHIMERA_COLOR
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("CHIMERA_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error displays an error message to stderr
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}

	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}

	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header with consistent formatting
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

var actionStyles = map[string]struct {
	symbol string
	attrs  []color.Attribute
}{
	"create":    {"+", []color.Attribute{color.FgGreen}},
	"update":    {"~", []color.Attribute{color.FgYellow}},
	"unchanged": {"=", []color.Attribute{color.Faint}},
	"skip":      {"-", []color.Attribute{color.Faint}},
	"failed":    {"x", []color.Attribute{color.FgRed, color.Bold}},
}

// Operation displays one line per converted document
func (p *TerminalPresenter) Operation(action, label string) {
	if p.quiet {
		return
	}

	style, ok := actionStyles[action]
	if !ok {
		style.symbol = "?"
	}
	color.New(style.attrs...).Fprintf(p.output, "%s %-9s %s\n", style.symbol, action, label)
}

// Diff displays a unified diff with added and removed lines colored
func (p *TerminalPresenter) Diff(diff string) {
	if p.quiet || diff == "" {
		return
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			color.New(color.Bold).Fprint(p.output, line)
		case strings.HasPrefix(line, "@@"):
			color.New(color.FgCyan).Fprint(p.output, line)
		case strings.HasPrefix(line, "+"):
			color.New(color.FgGreen).Fprint(p.output, line)
		case strings.HasPrefix(line, "-"):
			color.New(color.FgRed).Fprint(p.output, line)
		default:
			fmt.Fprint(p.output, line)
		}
	}
	if !strings.HasSuffix(diff, "\n") {
		fmt.Fprintln(p.output)
	}
}

// Summary displays the non-zero counts on one line
func (p *TerminalPresenter) Summary(counts []Count) {
	if p.quiet {
		return
	}

	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.N > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.N, c.Label))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}
	color.New(color.FgCyan, color.Bold).Fprintf(p.output, "[Summary] %s\n", strings.Join(parts, " | "))
}

// Separator displays a visual separator
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}

	color.New(color.Faint).Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// SetDefault replaces the presenter used by the package level functions
// and returns a function restoring the previous one
func SetDefault(p *TerminalPresenter) func() {
	previous := defaultPresenter
	defaultPresenter = p
	return func() { defaultPresenter = previous }
}

// Error displays an error message using the default presenter instance.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Info displays an informational message using the default presenter instance.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Operation displays a conversion outcome using the default presenter instance.
func Operation(action, label string) {
	defaultPresenter.Operation(action, label)
}

// Diff displays a unified diff using the default presenter instance.
func Diff(diff string) {
	defaultPresenter.Diff(diff)
}

// Summary displays counts using the default presenter instance.
func Summary(counts []Count) {
	defaultPresenter.Summary(counts)
}

// SetQuiet enables or disables quiet mode for the default presenter instance.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}

// IsQuiet returns whether quiet mode is enabled for the default presenter instance.
func IsQuiet() bool {
	return defaultPresenter.IsQuiet()
}
