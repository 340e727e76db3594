package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nebula-edge/nebula/core/protocol"
)

func (m Model) View() string {
	if !m.snap.SetupComplete {
		return m.setupView()
	}
	return m.chatView()
}

func (m Model) setupView() string {
	parts := []string{
		m.styles.Title.Render("NEBULA EDGE"),
		m.styles.Subtitle.Render("Enter your API key"),
		m.keyInput.View(),
		"",
		m.styles.Button.Render("INITIALIZE AI"),
	}
	if m.notice != "" {
		parts = append(parts, "", m.styles.Error.Render(m.notice))
	}
	parts = append(parts, "", m.styles.Help.Render("enter: continue • esc: quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) chatView() string {
	status := m.styles.Status.Render("●")
	if m.snap.AwaitingResponse {
		status = m.spinner.View() + m.styles.Busy.Render(" thinking")
	}
	header := m.styles.Header.Render("NEBULA") + "  " + status

	help := "enter: send • ctrl+s: settings • pgup/pgdown: scroll • esc: quit"
	if m.snap.AwaitingResponse {
		help = "waiting for reply • ctrl+s: settings • esc: quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.input.View(),
		m.styles.Help.Render(help),
	)
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.snap.Turns) == 0 {
		return m.styles.Greeting.Render(m.kernel.Greeting())
	}

	var b strings.Builder
	for i, turn := range m.snap.Turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderTurn(turn))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTurn(turn protocol.Message) string {
	if turn.IsUser() {
		return m.styles.UserTurn.Render(turn.Content)
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(turn.Content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return m.styles.Assistant.Render(turn.Content)
}
