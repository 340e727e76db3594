package chat

import "github.com/charmbracelet/lipgloss"

// Nebula gradient palette.
var (
	colorBlue   = lipgloss.Color("#4285F4")
	colorViolet = lipgloss.Color("#9B72CB")
	colorRose   = lipgloss.Color("#D96570")
	colorMuted  = lipgloss.Color("#666666")
	colorText   = lipgloss.Color("#FFFFFF")
)

// Styles groups the lipgloss styles used by the chat screens.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Error     lipgloss.Style
	Button    lipgloss.Style
	Header    lipgloss.Style
	Status    lipgloss.Style
	Busy      lipgloss.Style
	UserTurn  lipgloss.Style
	Assistant lipgloss.Style
	Greeting  lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the dark Nebula theme.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginTop(1),
		Subtitle:  lipgloss.NewStyle().Foreground(colorMuted).MarginBottom(1),
		Error:     lipgloss.NewStyle().Foreground(colorRose),
		Button:    lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorBlue).Padding(0, 2),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Status:    lipgloss.NewStyle().Foreground(colorBlue),
		Busy:      lipgloss.NewStyle().Foreground(colorViolet),
		UserTurn:  lipgloss.NewStyle().Foreground(colorText).Border(lipgloss.RoundedBorder(), false, false, false, true).BorderForeground(colorBlue).PaddingLeft(1),
		Assistant: lipgloss.NewStyle().PaddingLeft(1),
		Greeting:  lipgloss.NewStyle().Bold(true).Foreground(colorViolet).MarginTop(1),
		Help:      lipgloss.NewStyle().Foreground(colorMuted),
	}
}
