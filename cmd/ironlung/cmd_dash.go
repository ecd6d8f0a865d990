package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"
)

// dashBinary is the TUI executable looked up on PATH.
const dashBinary = "ironlung-dash"

// newDashCmd creates the "ironlung dash" subcommand.
func newDashCmd() *cobra.Command {
	var cardsTotal int

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Launch the interactive dashboard",
		Long:  "Opens the ironlung-dash TUI with today's stats, streak, session timer and command palette.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bin, err := exec.LookPath(dashBinary)
			if err != nil {
				return fmt.Errorf("%s not found on PATH (go install ./cmd/%s): %w", dashBinary, dashBinary, err)
			}

			var args []string
			if cardsTotal > 0 {
				args = append(args, "--total", strconv.Itoa(cardsTotal))
			}
			dash := exec.CommandContext(cmd.Context(), bin, args...)
			dash.Stdin = cmd.InOrStdin()
			dash.Stdout = cmd.OutOrStdout()
			dash.Stderr = cmd.ErrOrStderr()

			if err := dash.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return fmt.Errorf("%s exited with status %d", dashBinary, exitErr.ExitCode())
				}
				return fmt.Errorf("run %s: %w", dashBinary, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cardsTotal, "total", 0, "cards in today's queue")
	return cmd
}
