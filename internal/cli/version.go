package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/focustrack/internal/web"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), web.Version)
		},
	}
}
