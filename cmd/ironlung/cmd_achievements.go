package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ironlung/pkg/dopamine"
)

// newAchievementsCmd creates the "ironlung achievements" subcommand.
func newAchievementsCmd() *cobra.Command {
	var earnedOnly bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which ones are earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			list := a.Assistant.Dopamine.Achievements()
			if earnedOnly {
				list = a.Assistant.Dopamine.EarnedAchievements()
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "no achievements yet")
				return nil
			}
			for _, ach := range list {
				mark := dimStyle.Render("·")
				when := ""
				if ach.Earned {
					mark = okStyle.Render("✓")
					when = dimStyle.Render(" (" + ach.EarnedAt.Local().Format("2006-01-02") + ")")
				}
				fmt.Fprintf(w, "%s %-16s %s%s\n", mark, ach.Name, ach.Description, when)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&earnedOnly, "earned", false, "only list earned achievements")
	return cmd
}

// newAchieveCmd creates the "ironlung achieve" subcommand.
func newAchieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achieve <name>",
		Short: "Mark an achievement as earned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !dopamine.IsAchievement(name) {
				return fmt.Errorf("unknown achievement %q", name)
			}

			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.Assistant.Dopamine.CheckAchievement(name) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already earned\n", name)
			}
			return nil
		},
	}
}
