package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return execute(newRootCmd())
}

// execute runs rootCmd and releases what wiring opened, whether or not the
// command failed.
func execute(rootCmd *cobra.Command, app *app) error {
	err := rootCmd.Execute()
	if closeErr := app.close(); closeErr != nil && err == nil {
		return closeErr
	}

	return err
}

func newRootCmd() (*cobra.Command, *app) {
	cfg := viper.New()
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "nb",
		Short:         "Notebook CLI (nb): study from your own notes",
		Long:          "nb talks to a notebook backend: upload physics, chemistry and biology notes, ask questions answered from them, and generate quizzes and summaries.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "Notebook backend URL (default http://127.0.0.1:5000)")
	flags.Bool("debug", false, "Mirror logs to stderr")
	_ = cfg.BindPFlag("api.base_url", flags.Lookup("base-url"))
	_ = cfg.BindPFlag("log.debug", flags.Lookup("debug"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSubjectsCmd(),
		newUploadCmd(app),
		newAttachmentsCmd(app),
		newAskCmd(app),
		newStudioCmd(app),
		newChatCmd(app),
	)

	return rootCmd, app
}
