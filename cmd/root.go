package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "askai",
		Short:         "askai: chat with the AI assistant from the terminal",
		Long:          "askai keeps a list of conversations with the AI assistant backend, sends messages to the active one and shows transcripts in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newAuthCmd(app),
		newRouteCmd(),
	)

	return rootCmd
}
