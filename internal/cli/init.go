package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/focustrack/internal/config"
)

// NewInitCommand creates the init command, which writes the default
// config file so table locations can be edited before first serve.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(rootOpts.ConfigPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", rootOpts.ConfigPath)
			return nil
		},
	}
}
