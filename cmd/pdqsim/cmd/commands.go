package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdqlab/pdqcore/control"
)

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands of the command channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range control.Commands() {
				fmt.Fprintf(cmd.OutOrStdout(), "0x%02x %s\n", byte(c), c)
			}

			return nil
		},
	}
}
