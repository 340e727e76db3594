// Package chat is the terminal presentation layer: a setup screen that
// collects the API key and a chat screen that renders the transcript. All
// state lives in the kernel's session store; the model only mirrors the
// latest snapshot it received.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/nebula-edge/nebula/kernel"
	"github.com/nebula-edge/nebula/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chrome is the number of lines taken by the header, input and help.
	chrome = 5

	credentialRequired = "Please enter an API key"
)

// snapshotMsg carries a state change published by the session store.
type snapshotMsg session.Snapshot

// subscriptionClosedMsg is sent when the store subscription ends.
type subscriptionClosedMsg struct{}

// Model is the bubbletea model for the chat client.
type Model struct {
	ctx      context.Context
	kernel   *kernel.Kernel
	snap     session.Snapshot
	updates  <-chan session.Snapshot
	cancel   func()
	styles   Styles
	keyInput textinput.Model
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	notice   string
	width    int
	height   int
}

// New creates a Model bound to k. The model subscribes to the session store
// immediately; Close releases the subscription.
func New(ctx context.Context, k *kernel.Kernel) Model {
	styles := DefaultStyles()

	keyInput := textinput.New()
	keyInput.Placeholder = "sk-ant-..."
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.Prompt = "│ "
	keyInput.Width = 48
	keyInput.Focus()

	input := textinput.New()
	input.Placeholder = "How can I help you today?"
	input.Prompt = "│ "
	input.CharLimit = 8192
	input.Width = defaultWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Pulse
	sp.Style = styles.Busy

	updates, cancel := k.Session().Subscribe()

	m := Model{
		ctx:      ctx,
		kernel:   k,
		snap:     k.Session().Snapshot(),
		updates:  updates,
		cancel:   cancel,
		styles:   styles,
		keyInput: keyInput,
		input:    input,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chrome),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.renderer = newRenderer(defaultWidth)
	m.syncFocus()
	m.refreshTranscript()
	return m
}

// Close releases the store subscription.
func (m Model) Close() {
	m.cancel()
}

// Snapshot returns the state the model last rendered.
func (m Model) Snapshot() session.Snapshot {
	return m.snap
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForSnapshot(m.updates))
}

// waitForSnapshot turns the next store publication into a tea.Msg.
func waitForSnapshot(updates <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}
