package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newPaletteCmd creates the "ironlung palette" subcommand.
func newPaletteCmd() *cobra.Command {
	var (
		limit int
		exec  bool
	)

	cmd := &cobra.Command{
		Use:   "palette [query...]",
		Short: "Search the command palette",
		Long:  "Search the command palette. With --exec the top match is run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			// Palette actions may touch the session; pick up a running one.
			a.Assistant.Session.LoadSessionState()

			if limit <= 0 {
				limit = a.Config.Palette.Limit
			}
			results := a.Assistant.Palette.Search(strings.Join(args, " "), limit)
			w := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(w, "no matches")
				return nil
			}

			if exec {
				top := results[0]
				if err := a.Assistant.Palette.Execute(top); err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s\n", okStyle.Render("ran"), top.Item.Label)
				return a.Assistant.Snapshot()
			}

			for _, r := range results {
				fmt.Fprintf(w, "%-28s %s\n", r.Item.Label, dimStyle.Render(r.Item.Category))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	cmd.Flags().BoolVar(&exec, "exec", false, "run the top match")
	return cmd
}
