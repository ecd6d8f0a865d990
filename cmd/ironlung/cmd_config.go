package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ironlung/pkg/config"
)

// newConfigCmd creates the "ironlung config" subcommand.
func newConfigCmd() *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := config.ResolvePaths()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if showPaths {
				fmt.Fprintf(w, "home:    %s\n", paths.Home)
				fmt.Fprintf(w, "config:  %s\n", paths.ConfigPath)
				fmt.Fprintf(w, "palette: %s\n", paths.PalettePath)
				fmt.Fprintf(w, "db:      %s\n", paths.DBPath)
				fmt.Fprintf(w, "logs:    %s\n", paths.LogsDir)
				return nil
			}

			cfg, err := config.Load(paths.ConfigPath)
			if err != nil {
				return err
			}
			out, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = w.Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "print resolved file locations instead")
	return cmd
}
