// Package config loads ironlung settings (config.toml), user palette
// shortcuts (palette.yaml) and resolves state paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the parsed config.toml. Absent keys keep their Default() value.
type Config struct {
	Session      SessionConfig      `toml:"session"`
	Focus        FocusConfig        `toml:"focus"`
	Audio        AudioConfig        `toml:"audio"`
	Palette      PaletteConfig      `toml:"palette"`
	Orchestrator OrchestratorConfig `toml:"orchestrator"`
	Logging      LoggingConfig      `toml:"logging"`
}

// SessionConfig tunes the session manager.
type SessionConfig struct {
	WarningIntervals []int `toml:"warning_intervals"`
	UndoDepth        int   `toml:"undo_depth"`
}

// FocusConfig tunes focus mode. AutoTriggerStreak 0 disables auto entry.
type FocusConfig struct {
	AutoTriggerStreak int `toml:"auto_trigger_streak"`
}

// AudioConfig controls sound feedback.
type AudioConfig struct {
	Muted  bool    `toml:"muted"`
	Volume float64 `toml:"volume"`
	Bell   bool    `toml:"bell"`
}

// PaletteConfig controls palette search.
type PaletteConfig struct {
	Limit int `toml:"limit"`
}

// OrchestratorConfig controls the headless background runner.
type OrchestratorConfig struct {
	PollIntervalSeconds     int `toml:"poll_interval_seconds"`
	StopTimeoutSeconds      int `toml:"stop_timeout_seconds"`
	SnapshotIntervalMinutes int `toml:"snapshot_interval_minutes"`
}

// PollInterval returns the poll interval as a duration.
func (c OrchestratorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// StopTimeout returns the stop timeout as a duration.
func (c OrchestratorConfig) StopTimeout() time.Duration {
	return time.Duration(c.StopTimeoutSeconds) * time.Second
}

// SnapshotInterval returns the recovery snapshot interval as a duration.
func (c OrchestratorConfig) SnapshotInterval() time.Duration {
	return time.Duration(c.SnapshotIntervalMinutes) * time.Minute
}

// LoggingConfig selects log verbosity. Debug also mirrors logs to stderr.
type LoggingConfig struct {
	Level string `toml:"level"`
	Debug bool   `toml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Session: SessionConfig{
			WarningIntervals: []int{60, 90, 120},
			UndoDepth:        5,
		},
		Audio:   AudioConfig{Volume: 1.0},
		Palette: PaletteConfig{Limit: 20},
		Orchestrator: OrchestratorConfig{
			PollIntervalSeconds:     30,
			StopTimeoutSeconds:      5,
			SnapshotIntervalMinutes: 5,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the TOML file at path over Default(). A missing file yields the
// defaults; a malformed or invalid file is an error naming the path.
func Load(path string) (Config, error) {
	cfg := Default()

	//nolint:gosec // path comes from ResolvePaths or the operator
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	for _, m := range c.Session.WarningIntervals {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("session.warning_intervals: %d is not positive", m))
		}
	}
	if c.Session.UndoDepth <= 0 {
		errs = append(errs, fmt.Errorf("session.undo_depth: %d is not positive", c.Session.UndoDepth))
	}
	if c.Focus.AutoTriggerStreak < 0 {
		errs = append(errs, fmt.Errorf("focus.auto_trigger_streak: %d is negative", c.Focus.AutoTriggerStreak))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume: %v outside [0, 1]", c.Audio.Volume))
	}
	if c.Palette.Limit < 0 {
		errs = append(errs, fmt.Errorf("palette.limit: %d is negative", c.Palette.Limit))
	}
	if c.Orchestrator.PollIntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("orchestrator.poll_interval_seconds: %d is not positive", c.Orchestrator.PollIntervalSeconds))
	}
	if c.Orchestrator.StopTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("orchestrator.stop_timeout_seconds: %d is not positive", c.Orchestrator.StopTimeoutSeconds))
	}
	if c.Orchestrator.SnapshotIntervalMinutes <= 0 {
		errs = append(errs, fmt.Errorf("orchestrator.snapshot_interval_minutes: %d is not positive", c.Orchestrator.SnapshotIntervalMinutes))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
