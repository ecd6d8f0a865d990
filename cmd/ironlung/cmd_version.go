package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ironlung/internal/appversion"
)

// newVersionCmd creates the "ironlung version" subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if rev := appversion.Revision(); rev != "" {
				fmt.Fprintf(w, "ironlung %s (%s)\n", appversion.String(), rev)
				return nil
			}
			fmt.Fprintf(w, "ironlung %s\n", appversion.String())
			return nil
		},
	}
}
