// Package main implements the ironlung-dash interactive dashboard.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ironlung/internal/appversion"
	"ironlung/internal/bootstrap"
	"ironlung/pkg/dashboard"
)

func newRootCmd() *cobra.Command {
	var cardsTotal int

	cmd := &cobra.Command{
		Use:           "ironlung-dash",
		Short:         "Interactive ironlung dashboard",
		Version:       fmt.Sprintf("ironlung-dash %s", appversion.String()),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := bootstrap.Open(cmd.Context(), bootstrap.Options{NoConsoleLog: true})
			if err != nil {
				return err
			}
			defer env.Close()

			watcher := initWatcher(env.Paths.Home, env.Logger)
			if watcher != nil {
				defer watcher.Close()
			}

			m := newModel(Deps{
				Assistant:  env.Assistant,
				Stats:      dashboard.NewService(env.Store, nil),
				Watcher:    watcher,
				CardsTotal: cardsTotal,
				Logger:     env.Logger.Named("dash"),
			})
			env.Assistant.Recover()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Flags().IntVar(&cardsTotal, "total", 0, "cards in today's queue")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
