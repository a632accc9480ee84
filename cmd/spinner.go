package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/notebook-cli/internal/adapters/render/program"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Requests shorter than this show no elapsed counter.
const showElapsedAfter = 2 * time.Second

type requestDoneMsg struct {
	err error
}

type requestSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	now     func() time.Time
	started time.Time
	elapsed time.Duration
	err     error
	done    bool
}

func newRequestSpinnerModel(label string, run tea.Cmd, now func() time.Time) requestSpinnerModel {
	if now == nil {
		now = time.Now
	}

	return requestSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("37"))),
		),
		label:   label,
		run:     run,
		now:     now,
		started: now(),
	}
}

func (m requestSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m requestSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		m.elapsed = m.now().Sub(m.started).Truncate(time.Second)
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m requestSpinnerModel) View() string {
	if m.done {
		return ""
	}
	if m.elapsed < showElapsedAfter {
		return m.spinner.View() + " " + m.label
	}

	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, m.elapsed)
}

// runWithSpinner animates label on a terminal while fn runs. Pipes and
// buffers get the label once as a plain line.
func runWithSpinner(ctx context.Context, output io.Writer, label string, fn func(context.Context) error) error {
	if !isTerminal(output) {
		_, _ = fmt.Fprintln(output, label)
		return fn(ctx)
	}

	run := func() tea.Msg {
		return requestDoneMsg{err: fn(ctx)}
	}

	final, err := program.Run(ctx, newRequestSpinnerModel(label, run, nil), output)
	if err != nil {
		return err
	}

	return final.err
}
