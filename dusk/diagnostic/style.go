package diagnostic

import "github.com/charmbracelet/lipgloss"

// Style decorates the parts of a rendered diagnostic.
type Style interface {
	Location(text string) string
	Gutter(text string) string
	Caret(text string) string
	Severity(sev Severity, text string) string
}

type plainStyle struct{}

func (plainStyle) Location(text string) string             { return text }
func (plainStyle) Gutter(text string) string               { return text }
func (plainStyle) Caret(text string) string                { return text }
func (plainStyle) Severity(_ Severity, text string) string { return text }

// PlainStyle leaves output undecorated.
var PlainStyle Style = plainStyle{}

type colorStyle struct {
	location lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
	severity map[Severity]lipgloss.Style
}

// ColorStyle highlights output for terminals. lipgloss drops the escape
// codes when the output is not a terminal.
func ColorStyle() Style {
	return &colorStyle{
		location: lipgloss.NewStyle().Bold(true),
		gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		caret:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		severity: map[Severity]lipgloss.Style{
			Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			Hint:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		},
	}
}

func (s *colorStyle) Location(text string) string { return s.location.Render(text) }
func (s *colorStyle) Gutter(text string) string   { return s.gutter.Render(text) }
func (s *colorStyle) Caret(text string) string    { return s.caret.Render(text) }

func (s *colorStyle) Severity(sev Severity, text string) string {
	return s.severity[sev].Render(text)
}
