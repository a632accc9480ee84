package cmd

import (
	"fmt"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSubjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "subjects",
		Short:             "List the available subjects",
		PersistentPreRunE: skipWiring,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, subject := range domain.Subjects() {
				marker := ""
				if subject == domain.DefaultSubject {
					marker = "\t(default)"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s%s\n", subject, subject.Label(), marker); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// selectSubject switches to raw when given. Empty keeps the active subject.
func selectSubject(app *app, raw string) error {
	if raw == "" {
		return nil
	}

	subject, err := domain.ParseSubject(raw)
	if err != nil {
		return err
	}

	return app.notebook.SwitchSubject(subject)
}

func addSubjectFlag(cmd *cobra.Command, target *string, usage string) {
	cmd.Flags().StringVarP(target, "subject", "s", "", usage)
	_ = cmd.RegisterFlagCompletionFunc("subject", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(domain.Subjects()))
		for _, subject := range domain.Subjects() {
			names = append(names, string(subject))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
