package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nebula-edge/nebula/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.renderer = newRenderer(msg.Width)
		m.refreshTranscript()
		return m, nil

	case snapshotMsg:
		m.snap = session.Snapshot(msg)
		m.syncFocus()
		m.refreshTranscript()
		return m, waitForSnapshot(m.updates)

	case subscriptionClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.snap.SetupComplete {
			return m.updateChat(msg)
		}
		return m.updateSetup(msg)
	}

	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.keyInput, cmd = m.keyInput.Update(msg)
		return m, cmd
	}

	if err := m.kernel.OnCredentialSubmit(m.ctx, m.keyInput.Value()); err != nil {
		m.notice = credentialRequired
		return m, nil
	}
	m.notice = ""
	m.snap = m.kernel.Session().Snapshot()
	m.syncFocus()
	m.refreshTranscript()
	return m, textinput.Blink
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.kernel.ResetSetup(m.ctx)
		m.keyInput.SetValue(m.kernel.Session().Credential())
		m.snap = m.kernel.Session().Snapshot()
		m.notice = ""
		m.syncFocus()
		return m, textinput.Blink
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		return m.send()
	}

	if m.snap.AwaitingResponse {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send hands the input to the kernel. The reply arrives later as a
// snapshotMsg from the store subscription.
func (m Model) send() (tea.Model, tea.Cmd) {
	if m.snap.AwaitingResponse {
		return m, nil
	}
	if _, err := m.kernel.OnSendPressed(m.ctx, m.input.Value()); err != nil {
		return m, nil
	}
	m.input.Reset()
	m.snap = m.kernel.Session().Snapshot()
	m.refreshTranscript()
	return m, m.spinner.Tick
}

func (m *Model) syncFocus() {
	if m.snap.SetupComplete {
		m.keyInput.Blur()
		m.input.Focus()
		return
	}
	m.input.Blur()
	m.keyInput.Focus()
}
