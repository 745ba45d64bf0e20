package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const OutputOptionName = "output"

func newEncodeCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode <program.yaml>",
		Short: "Build a host byte stream from a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			prog, err := ParseProgram(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			stream, err := prog.Encode()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) +
					".bin"
			}

			err = os.WriteFile(output, stream, 0o644)
			if err != nil {
				return err
			}

			opts.log.Infof("wrote %d bytes to %s", len(stream), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "",
		"Stream file to write. Defaults to the program name with .bin")

	return cmd
}
