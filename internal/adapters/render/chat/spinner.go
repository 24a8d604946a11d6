package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const ThinkingLabel = "Thinking..."

// Waits shorter than this are shown without a counter.
const elapsedAfter = 2 * time.Second

type workDoneMsg struct {
	err error
}

// thinkingModel animates while one backend call is in flight.
type thinkingModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	started time.Time
	elapsed time.Duration
	err     error
	done    bool
}

func newThinkingModel(label string, work tea.Cmd) thinkingModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("114"))),
	)

	return thinkingModel{
		spinner: s,
		label:   label,
		work:    work,
		started: time.Now(),
	}
}

func (m thinkingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m thinkingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		m.elapsed = msg.Time.Sub(m.started)
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m thinkingModel) View() string {
	if m.done {
		return ""
	}

	view := m.spinner.View() + " " + m.label
	if m.elapsed >= elapsedAfter {
		view += fmt.Sprintf(" %ds", int(m.elapsed/time.Second))
	}

	return view
}

// RunWithSpinner shows label on output while work runs and returns the error
// from work. Cancelling ctx stops the animation.
func RunWithSpinner(ctx context.Context, output io.Writer, label string, work func(context.Context) error) error {
	p := tea.NewProgram(
		newThinkingModel(label, func() tea.Msg {
			return workDoneMsg{err: work(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(thinkingModel)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedRenderModel, finalModel)
	}

	return result.err
}
