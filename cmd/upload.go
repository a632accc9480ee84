package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/notebook-cli/internal/application"
	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newUploadCmd(app *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload notes for a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := selectSubject(app, subject); err != nil {
				return err
			}

			attachment, err := uploadFile(cmd, app, args[0], "")
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s to %s (%s)\n", attachment.DisplayName, attachment.Subject.Label(), attachment.ID)
			return err
		},
	}

	addSubjectFlag(cmd, &subject, "Subject the notes belong to (default physics)")

	return cmd
}

// uploadFile sends path to subject, or to the active subject when empty.
func uploadFile(cmd *cobra.Command, app *app, path string, subject domain.Subject) (domain.Attachment, error) {
	path = strings.TrimSpace(path)
	file, err := os.Open(path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	name := filepath.Base(path)
	if !domain.HasAcceptedExtension(name) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not one of %s; uploading anyway\n", name, strings.Join(domain.AcceptedExtensions, ", "))
	}

	var attachment domain.Attachment
	err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Uploading...", func(ctx context.Context) error {
		var uploadErr error
		attachment, uploadErr = app.notebook.Upload(ctx, application.UploadInput{
			Name:    name,
			Content: file,
			Subject: subject,
		})
		return uploadErr
	})
	if err != nil {
		var backendErr *domain.BackendError
		if errors.As(err, &backendErr) || errors.Is(err, domain.ErrTransport) {
			return domain.Attachment{}, fmt.Errorf("upload %s: %s", name, domain.DisplayText(err, "upload failed"))
		}
		return domain.Attachment{}, err
	}

	return attachment, nil
}
