package config

import (
	"fmt"
	"os"
	"path/filepath"

	"ironlung/pkg/protocol"
)

// Paths holds all resolved ironlung state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	Home        string // ~/.ironlung or IRONLUNG_HOME
	LogsDir     string // $Home/logs
	DBPath      string // ironlung.db or IRONLUNG_DB_PATH
	ConfigPath  string // config.toml or IRONLUNG_CONFIG
	PalettePath string // palette.yaml
}

// ResolvePaths returns all ironlung paths, respecting env var overrides.
// Environment variables:
//   - IRONLUNG_HOME: base directory for all state (default: ~/.ironlung)
//   - IRONLUNG_DB_PATH: activity database (default: $IRONLUNG_HOME/ironlung.db)
//   - IRONLUNG_CONFIG: settings file (default: $IRONLUNG_HOME/config.toml)
//
// The dopamine and session snapshots always live directly under Home.
func ResolvePaths() (*Paths, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	return &Paths{
		Home:        home,
		LogsDir:     filepath.Join(home, protocol.LogsDir),
		DBPath:      resolvePathWithEnv("IRONLUNG_DB_PATH", home, protocol.ActivityDBFile),
		ConfigPath:  resolvePathWithEnv("IRONLUNG_CONFIG", home, protocol.ConfigFile),
		PalettePath: filepath.Join(home, protocol.PaletteFile),
	}, nil
}

// EnsureDirs creates the home and logs directories.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.Home, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// resolveHome returns the state directory from IRONLUNG_HOME or ~/.ironlung.
func resolveHome() (string, error) {
	if v := os.Getenv("IRONLUNG_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, protocol.IronlungDir), nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
