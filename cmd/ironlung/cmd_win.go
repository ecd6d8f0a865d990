package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"ironlung/pkg/dopamine"
)

// newWinCmd creates the "ironlung win" subcommand.
func newWinCmd() *cobra.Command {
	var prospectID int64

	cmd := &cobra.Command{
		Use:   "win <type>",
		Short: "Record a win and extend the streak",
		Long:  "Record a win. Types: " + joinWinTypes() + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wt, err := dopamine.ParseWinType(args[0])
			if err != nil {
				return fmt.Errorf("%w (valid: %s)", err, joinWinTypes())
			}

			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.Assistant.RecordWin(cmd.Context(), wt, prospectID)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s (streak %d, total %d)\n", okStyle.Render("✓"), wt, out.Streak, out.TotalWins)
			if out.FocusEntered {
				fmt.Fprintln(w, "focus mode suggested: streak is hot")
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&prospectID, "prospect", 0, "prospect ID the win belongs to")
	return cmd
}

// newSkipCmd creates the "ironlung skip" subcommand.
func newSkipCmd() *cobra.Command {
	var prospectID int64

	cmd := &cobra.Command{
		Use:   "skip",
		Short: "Skip the current card and break the streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Assistant.Skip(cmd.Context(), prospectID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "skipped (streak reset)")
			return nil
		},
	}

	cmd.Flags().Int64Var(&prospectID, "prospect", 0, "prospect ID being skipped")
	return cmd
}

// newStreakCmd creates the "ironlung streak" subcommand.
func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current streak and this session's wins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			d := a.Assistant.Dopamine
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "streak: %d\n", d.Streak())
			fmt.Fprintf(w, "total wins: %d\n", d.TotalWins())
			fmt.Fprintln(w, headerStyle.Render("session wins:"))
			wins := d.SessionWins()
			for _, wt := range dopamine.AllWinTypes() {
				fmt.Fprintf(w, "  %-16s %d\n", wt, wins[wt])
			}
			return nil
		},
	}
}

func joinWinTypes() string {
	names := make([]string, 0, len(dopamine.AllWinTypes()))
	for _, wt := range dopamine.AllWinTypes() {
		names = append(names, string(wt))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
