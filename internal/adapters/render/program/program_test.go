package program

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countModel struct {
	ticks int
	limit int
}

type tickMsg struct{}

func tick() tea.Msg { return tickMsg{} }

func (m countModel) Init() tea.Cmd { return tick }

func (m countModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tickMsg); !ok {
		return m, nil
	}

	m.ticks++
	if m.ticks >= m.limit {
		return m, tea.Quit
	}
	return m, tick
}

func (m countModel) View() string { return "" }

type swapModel struct{}

func (swapModel) Init() tea.Cmd                       { return tick }
func (swapModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return countModel{}, tea.Quit }
func (swapModel) View() string                        { return "" }

type idleModel struct{}

func (idleModel) Init() tea.Cmd                       { return nil }
func (idleModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return idleModel{}, nil }
func (idleModel) View() string                        { return "" }

func TestRunReturnsFinalModel(t *testing.T) {
	t.Parallel()

	final, err := Run(context.Background(), countModel{limit: 3}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, final.ticks)
}

func TestRunRejectsSwappedModel(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), swapModel{}, io.Discard)
	require.ErrorIs(t, err, ErrUnexpectedModel)
	assert.ErrorContains(t, err, "program.countModel")
}

func TestRunReportsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, idleModel{}, io.Discard)
	require.ErrorIs(t, err, context.Canceled)
}
