package chat

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/askai-cli/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// model renders once and quits, so views share the bubbletea pipeline with
// the interactive spinner.
type model struct {
	view   func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderList draws the conversation list with the active entry marked.
func RenderList(state domain.SessionState, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return renderList(state, opts, s)
	})
}

// RenderTranscript draws one conversation. found is false when there is no
// active conversation yet.
func RenderTranscript(conversation domain.Conversation, found bool, lastError string) (string, error) {
	return render(func(s styles) string {
		return renderTranscript(conversation, found, lastError, s)
	})
}

func RenderMessage(message domain.Message) (string, error) {
	return render(func(s styles) string {
		return renderMessage(message, s)
	})
}

func RenderBanner(lastError string) (string, error) {
	return render(func(s styles) string {
		return renderBanner(lastError, s)
	})
}

func render(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{view: view, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
