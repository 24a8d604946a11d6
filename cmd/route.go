package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/askai-cli/internal/domain"
)

func newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Print whether a page path is shown with or without the header and footer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), domain.DisplayModeForRoute(args[0]))
			return err
		},
	}
}
