package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ironlung/pkg/session"
)

// newUndoCmd creates the "ironlung undo" command group. Running it bare pops
// the most recent action.
func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Manage the session undo stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUndoPop(cmd)
		},
	}

	cmd.AddCommand(newUndoPushCmd(), newUndoPopCmd(), newUndoPeekCmd(), newUndoListCmd())
	return cmd
}

func newUndoPushCmd() *cobra.Command {
	var (
		actionType string
		prospectID int64
		before     map[string]string
		after      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Record an undoable action",
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
			act := a.Assistant.Session.PushUndo(session.UndoableAction{
				ActionType:  actionType,
				ProspectID:  prospectID,
				BeforeState: toAnyMap(before),
				AfterState:  toAnyMap(after),
			})
			if err := a.Assistant.Snapshot(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %s (depth %d)\n", act.ID, a.Assistant.Session.UndoDepth())
			return nil
		},
	}

	cmd.Flags().StringVar(&actionType, "type", "", "action type, e.g. status_change")
	cmd.Flags().Int64Var(&prospectID, "prospect", 0, "prospect ID the action touched")
	cmd.Flags().StringToStringVar(&before, "before", nil, "state before the action (key=value,...)")
	cmd.Flags().StringToStringVar(&after, "after", nil, "state after the action (key=value,...)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newUndoPopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pop",
		Short: "Remove and print the most recent action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUndoPop(cmd)
		},
	}
}

func runUndoPop(cmd *cobra.Command) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireSession(); err != nil {
		return err
	}
	act, ok := a.Assistant.Undo()
	if !ok {
		return nil
	}
	if err := a.Assistant.Snapshot(); err != nil {
		return err
	}
	return writeAction(cmd.OutOrStdout(), act)
}

func newUndoPeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "peek",
		Short: "Print the most recent action without removing it",
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
			act, ok := a.Assistant.Session.PeekUndo()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "undo stack is empty")
				return nil
			}
			return writeAction(cmd.OutOrStdout(), act)
		},
	}
}

func newUndoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the undo stack, oldest first",
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
			w := cmd.OutOrStdout()
			for i, act := range a.Assistant.Session.UndoHistory() {
				fmt.Fprintf(w, "%d. %s prospect=%d at %s\n", i+1, act.ActionType, act.ProspectID, act.Timestamp.Local().Format("15:04:05"))
			}
			return nil
		},
	}
}

func writeAction(w io.Writer, act session.UndoableAction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(act); err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	return nil
}

func toAnyMap(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
