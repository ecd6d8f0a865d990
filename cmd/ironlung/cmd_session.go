package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newSessionCmd creates the "ironlung session" command group.
func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start, end and inspect the work session",
	}

	cmd.AddCommand(
		newSessionStartCmd(),
		newSessionEndCmd(),
		newSessionStatusCmd(),
		newSessionWarningsCmd(),
		newSessionRecoverCmd(),
		newSessionClearCmd(),
	)
	return cmd
}

func newSessionStartCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Begin a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if !force && a.Assistant.Session.LoadSessionState() {
				return fmt.Errorf("session %s is already running (end it first or pass --force)", a.Assistant.Session.ID())
			}
			a.Assistant.StartSession()
			fmt.Fprintf(cmd.OutOrStdout(), "session %s started\n", a.Assistant.Session.ID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace a running session")
	return cmd
}

func newSessionEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			elapsed := a.Assistant.Session.ElapsedMinutes()
			id := a.Assistant.Session.ID()
			if err := a.Assistant.EndSession(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s ended after %d min\n", id, elapsed)
			return nil
		},
	}
}

func newSessionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.Assistant.Session
			w := cmd.OutOrStdout()
			if !s.LoadSessionState() {
				fmt.Fprintln(w, "session: inactive")
				fmt.Fprintf(w, "energy:  %s\n", s.EnergyLevel())
				return nil
			}
			start, _ := s.SessionStart()
			fmt.Fprintln(w, "session: active")
			fmt.Fprintf(w, "id:      %s\n", s.ID())
			fmt.Fprintf(w, "started: %s\n", start.Local().Format("15:04"))
			fmt.Fprintf(w, "elapsed: %d min\n", s.ElapsedMinutes())
			fmt.Fprintf(w, "energy:  %s\n", s.EnergyLevel())
			fmt.Fprintf(w, "undo:    %d\n", s.UndoDepth())
			fmt.Fprintf(w, "warn at: %s min\n", joinInts(s.WarningIntervals()))
			return nil
		},
	}
}

func newSessionWarningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "Fire any pending time warning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSession(); err != nil {
				return err
			}
			if _, ok := a.Assistant.CheckTime(); !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no new warning (%d min elapsed)\n", a.Assistant.Session.ElapsedMinutes())
				return nil
			}
			return a.Assistant.Snapshot()
		},
	}
}

func newSessionRecoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Check for an interrupted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.Assistant.Recover() {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to recover")
			}
			return nil
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the session recovery snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Assistant.Session.ClearRecoveryState(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "recovery state cleared")
			return nil
		},
	}
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
