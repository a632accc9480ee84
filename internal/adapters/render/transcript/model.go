package transcript

import (
	"context"
	"io"

	"github.com/bnema/notebook-cli/internal/adapters/render/program"
	tea "github.com/charmbracelet/bubbletea"
)

type renderReadyMsg struct{}

type model struct {
	view   View
	opts   RenderOptions
	styles styles
	output string
	err    error
}

func newModel(view View, opts RenderOptions) model {
	return model{
		view:   view,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output, m.err = renderView(m.view, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out the whole notebook screen: header, subject tabs, sources
// and transcript.
func Render(view View, opts RenderOptions) (string, error) {
	rendered, err := program.Run(context.Background(), newModel(view, opts), io.Discard)
	if err != nil {
		return "", err
	}
	if rendered.err != nil {
		return "", rendered.err
	}

	return rendered.View(), nil
}
