package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/fundex/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fundctl", version.String())
		},
	}
}
