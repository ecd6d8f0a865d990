package main

import (
	"fmt"

	"ironlung/internal/appversion"

	"github.com/spf13/cobra"
)

// newRootCmd creates the root ironlung command with all subcommands attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ironlung",
		Short:         "Sales pipeline assistant with streaks, focus and session tracking",
		Long:          "ironlung keeps a single operator moving through the call queue.\nIt records wins and streaks, tracks the work session, and offers a command palette.",
		Version:       fmt.Sprintf("ironlung %s", appversion.String()),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(
		newWinCmd(),
		newSkipCmd(),
		newStreakCmd(),
		newAchievementsCmd(),
		newAchieveCmd(),
		newSessionCmd(),
		newUndoCmd(),
		newPaletteCmd(),
		newStatsCmd(),
		newRunCmd(),
		newDashCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}
