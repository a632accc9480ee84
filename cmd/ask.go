package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/notebook-cli/internal/adapters/render/transcript"
	"github.com/bnema/notebook-cli/internal/application"
	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAskCmd(app *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a question answered from your notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := selectSubject(app, subject); err != nil {
				return err
			}

			question := strings.Join(args, " ")
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Thinking...", func(ctx context.Context) error {
				_, err := app.notebook.Ask(ctx, question)
				return err
			})
			if err != nil {
				return err
			}

			return printTranscript(cmd, app, app.notebook.Transcript())
		},
	}

	addSubjectFlag(cmd, &subject, "Subject to ask about (default physics)")

	return cmd
}

func newStudioCmd(app *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:       "studio mcq|short|summary",
		Short:     "Generate a quiz, short-answer set or summary from your notes",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"mcq", "short", "summary"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseArtifactKind(args[0])
			if err != nil {
				return err
			}

			if err := selectSubject(app, subject); err != nil {
				return err
			}

			label := fmt.Sprintf("Generating %s...", kind.Label())
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) error {
				_, err := app.notebook.GenerateArtifact(ctx, kind)
				return err
			})
			if err != nil {
				return err
			}

			return printTranscript(cmd, app, app.notebook.Transcript())
		},
	}

	addSubjectFlag(cmd, &subject, "Subject to study (default physics)")

	return cmd
}

func printTranscript(cmd *cobra.Command, app *app, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	opts := app.renderOptions(cmd.OutOrStdout())
	opts.HideSources = true

	output, err := app.render(transcript.View{Messages: messages}, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

// describeRequestError turns a notebook error into a one-line notice for the
// chat loop.
func describeRequestError(err error) string {
	switch {
	case errors.Is(err, application.ErrAnswerDiscarded):
		return "Previous answer dropped after the notebook changed."
	case errors.Is(err, domain.ErrBusy):
		return "Still waiting for the previous request."
	default:
		return domain.DisplayText(err, err.Error())
	}
}
