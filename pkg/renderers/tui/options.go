package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value onto an OutputFormat.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	switch OutputFormat(value) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(value), true
	case "":
		return OutputFormatJSON, true
	default:
		return "", false
	}
}

// Theme captures optional formatting hints applied to printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// DefaultTheme returns the prefixes used by the paymentform CLI. Colors are
// dropped when the output does not support them.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:  infoStyle.Render("›") + " ",
		ErrorPrefix: errorStyle.Render("✗") + " ",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger routes prompt diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}
