package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles renders command output. A plain Styles leaves text untouched, so
// piped output carries no escape codes.
type Styles struct {
	plain bool

	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewStyles creates styles from a theme. plain disables styling.
func NewStyles(theme *Theme, plain bool) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		plain:   plain,
		title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		heading: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		success: lipgloss.NewStyle().Foreground(theme.Success),
		failure: lipgloss.NewStyle().Foreground(theme.Error),
	}
}

// stylesFor styles output only when w is a terminal.
func stylesFor(w io.Writer) *Styles {
	return NewStyles(DefaultTheme(), !isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *Styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// Title renders a top-level heading.
func (s *Styles) Title(text string) string { return s.render(s.title, text) }

// Heading renders a section heading.
func (s *Styles) Heading(text string) string { return s.render(s.heading, text) }

// Muted renders secondary text.
func (s *Styles) Muted(text string) string { return s.render(s.muted, text) }

// Success renders a positive outcome.
func (s *Styles) Success(text string) string { return s.render(s.success, text) }

// Failure renders a negative outcome.
func (s *Styles) Failure(text string) string { return s.render(s.failure, text) }
