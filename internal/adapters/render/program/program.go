// Package program runs bubbletea models that take no keyboard input and end
// on their own, such as one-shot renders and request spinners.
package program

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

// Run drives model until it quits and returns the final model. A canceled ctx
// is reported as ctx.Err().
func Run[M tea.Model](ctx context.Context, model M, output io.Writer) (M, error) {
	var zero M

	p := tea.NewProgram(
		model,
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, err
	}

	result, ok := finalModel.(M)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedModel, finalModel)
	}

	return result, nil
}
