// Package bootstrap assembles an Assistant from the files under the ironlung
// home directory. Both binaries start through Open.
package bootstrap

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"ironlung/internal/logging"
	"ironlung/pkg/activity"
	"ironlung/pkg/assistant"
	"ironlung/pkg/audio"
	"ironlung/pkg/config"
)

// Options adjusts Open for the calling binary.
type Options struct {
	// Bell receives terminal bell cues when audio.bell is set. Nil uses
	// os.Stderr.
	Bell io.Writer
	// NoConsoleLog suppresses the stderr mirror from logging.debug. The TUI
	// sets it so log lines do not tear the screen.
	NoConsoleLog bool
	// Runner overrides how palette shortcuts are executed.
	Runner assistant.Runner
}

// Env is an opened ironlung environment. Close it when done.
type Env struct {
	Paths     *config.Paths
	Config    config.Config
	Logger    *zap.Logger
	Store     *activity.Store
	Assistant *assistant.Assistant
}

// Open resolves paths, loads config.toml and palette.yaml, opens the activity
// log and builds the Assistant. A malformed palette.yaml is logged and
// skipped; every other failure is returned.
func Open(ctx context.Context, opts Options) (*Env, error) {
	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(paths.ConfigPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Dir:   paths.LogsDir,
		Level: cfg.Logging.Level,
		Debug: cfg.Logging.Debug && !opts.NoConsoleLog,
	})
	if err != nil {
		return nil, err
	}

	shortcuts, err := config.LoadShortcuts(paths.PalettePath)
	if err != nil {
		logger.Warn("ignoring palette shortcuts", zap.Error(err))
		shortcuts = nil
	}

	store, err := activity.Open(ctx, paths.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	var player audio.Player
	if cfg.Audio.Bell {
		bell := opts.Bell
		if bell == nil {
			bell = os.Stderr
		}
		player = audio.BellPlayer(bell)
	}

	asst := assistant.New(assistant.Options{
		DataDir:   paths.Home,
		Config:    &cfg,
		Store:     store,
		Shortcuts: shortcuts,
		Player:    player,
		Runner:    opts.Runner,
		Logger:    logger,
	})

	logger.Debug("environment opened",
		zap.String("home", paths.Home),
		zap.Int("shortcuts", len(shortcuts)),
	)
	return &Env{Paths: paths, Config: cfg, Logger: logger, Store: store, Assistant: asst}, nil
}

// Close releases the activity log and flushes the logger.
func (e *Env) Close() error {
	err := e.Store.Close()
	_ = e.Logger.Sync()
	return err
}
