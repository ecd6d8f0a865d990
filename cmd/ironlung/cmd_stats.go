package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ironlung/pkg/dashboard"
)

// newStatsCmd creates the "ironlung stats" subcommand.
func newStatsCmd() *cobra.Command {
	var (
		date  string
		total int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the day's glanceable stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			var data dashboard.Data
			if date == "" {
				data, err = a.Assistant.Dashboard(cmd.Context(), total)
			} else {
				day, perr := time.ParseInLocation(time.DateOnly, date, time.Local)
				if perr != nil {
					return fmt.Errorf("parse --date: %w", perr)
				}
				svc := dashboard.NewService(a.Store, nil)
				data, err = svc.For(cmd.Context(), day, a.Assistant.Dopamine.Streak(), total)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			cards := fmt.Sprint(data.CardsProcessed)
			if data.CardsTotal > 0 {
				cards = fmt.Sprintf("%d/%d", data.CardsProcessed, data.CardsTotal)
			}
			fmt.Fprintf(w, "cards:  %s\n", cards)
			fmt.Fprintf(w, "calls:  %d\n", data.CallsMade)
			fmt.Fprintf(w, "emails: %d\n", data.EmailsSent)
			fmt.Fprintf(w, "demos:  %d\n", data.DemosScheduled)
			fmt.Fprintf(w, "streak: %d\n", data.CurrentStreak)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to report (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&total, "total", 0, "cards in today's queue")
	return cmd
}
