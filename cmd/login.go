package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/spf13/cobra"
	input "github.com/tcnksm/go-input"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the notebook backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui := &input.UI{
				Writer: cmd.ErrOrStderr(),
				Reader: cmd.InOrStdin(),
			}

			if strings.TrimSpace(username) == "" {
				answer, err := ui.Ask("Username", &input.Options{Required: true, HideOrder: true})
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = answer
			}

			if password == "" {
				_, isFile := cmd.InOrStdin().(*os.File)
				answer, err := ui.Ask("Password", &input.Options{Required: true, HideOrder: true, Mask: isFile})
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = answer
			}

			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in...", func(ctx context.Context) error {
				_, err := app.notebook.Login(ctx, username, password)
				return err
			})
			if err != nil {
				return errors.New(domain.DisplayText(err, domain.MessageInvalidCredentials))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", app.notebook.Session().Identity)
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored identity and attachments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.notebook.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := app.notebook.Session()
			if !session.Authenticated() {
				return domain.ErrNotAuthenticated
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), session.Identity)
			return err
		},
	}
}
