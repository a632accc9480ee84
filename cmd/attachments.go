package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/notebook-cli/internal/adapters/render/transcript"
	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAttachmentsCmd(app *app) *cobra.Command {
	var subject string
	var all bool

	cmd := &cobra.Command{
		Use:     "attachments",
		Aliases: []string{"sources"},
		Short:   "List uploaded notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return listAllAttachments(cmd, app)
			}

			if err := selectSubject(app, subject); err != nil {
				return err
			}

			snapshot := app.notebook.Snapshot()
			output, err := app.render(transcript.View{
				Identity:    snapshot.Session.Identity,
				Subject:     snapshot.Subject,
				Attachments: snapshot.Visible,
			}, app.renderOptions(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	addSubjectFlag(cmd, &subject, "Subject to list (default physics)")
	cmd.Flags().BoolVar(&all, "all", false, "List attachments of every subject")
	cmd.MarkFlagsMutuallyExclusive("subject", "all")

	cmd.AddCommand(newAttachmentsRemoveCmd(app))

	return cmd
}

func listAllAttachments(cmd *cobra.Command, app *app) error {
	attachments := app.notebook.Attachments()
	if len(attachments) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No attachments.")
		return err
	}

	for _, attachment := range attachments {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			attachment.ID,
			attachment.Subject,
			attachment.DisplayName,
			formatAddedAt(attachment.AddedAt),
		); err != nil {
			return err
		}
	}

	return nil
}

func formatAddedAt(addedAt time.Time) string {
	if addedAt.IsZero() {
		return "-"
	}

	return addedAt.Local().Format("2006-01-02 15:04")
}

func newAttachmentsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Forget an attachment locally",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.notebook.RemoveAttachment(cmd.Context(), domain.AttachmentID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return err
		},
	}
}
