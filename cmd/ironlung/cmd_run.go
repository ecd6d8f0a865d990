package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ironlung/pkg/orchestrator"
)

// warningCheckInterval is how often the run loop checks session time.
const warningCheckInterval = time.Minute

// newRunCmd creates the "ironlung run" subcommand: a headless session
// companion that fires time warnings and keeps the recovery snapshot fresh.
func newRunCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the session companion until interrupted",
		Long: "Recovers or starts a session, then runs background tasks: time warnings,\n" +
			"periodic recovery snapshots and reloading wins recorded by other commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := newRunLog(cmd.OutOrStdout(), stdoutIsTTY())

			a, err := openApp(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer a.Close()
			log.Step("config loaded from " + a.Paths.ConfigPath)

			if !a.Assistant.Recover() {
				a.Assistant.StartSession()
			}
			log.Step("session " + a.Assistant.Session.ID())

			orch := orchestrator.New(orchestrator.Config{
				PollInterval: a.Config.Orchestrator.PollInterval(),
				StopTimeout:  a.Config.Orchestrator.StopTimeout(),
				Logger:       a.Logger.Named("orchestrator"),
			})
			registerRunTasks(orch, a)

			if once {
				n := orch.RunDue(cmd.Context())
				fmt.Fprintf(log, "ran %d tasks\n", n)
				return a.Assistant.Snapshot()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch.Start(ctx)
			stopSpinner := log.StartSpinner("watching session (ctrl-c to stop)")
			<-ctx.Done()
			stopSpinner()

			stopErr := orch.Stop()
			if errors.Is(stopErr, orchestrator.ErrStopTimeout) {
				a.Logger.Warn("background tasks still running at shutdown", zap.Error(stopErr))
			}
			// The session stays active so the next run or the dashboard can
			// recover it.
			return errors.Join(stopErr, a.Assistant.Snapshot())
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run every task once and exit")
	return cmd
}

// registerRunTasks wires the assistant into the orchestrator.
func registerRunTasks(orch *orchestrator.Orchestrator, a *app) {
	orch.Register("time-warnings", func(context.Context) error {
		if _, fired := a.Assistant.CheckTime(); fired {
			return a.Assistant.Snapshot()
		}
		return nil
	}, warningCheckInterval)

	orch.Register("recovery-snapshot", func(context.Context) error {
		return a.Assistant.Snapshot()
	}, a.Config.Orchestrator.SnapshotInterval())

	orch.Register("reload-wins", func(context.Context) error {
		a.Assistant.Reload()
		return nil
	}, a.Config.Orchestrator.PollInterval())
}
