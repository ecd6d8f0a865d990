package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", `
[session]
warning_intervals = [30, 45]

[focus]
auto_trigger_streak = 10

[audio]
muted = true
volume = 0.25

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Session.WarningIntervals = []int{30, 45}
	want.Focus.AutoTriggerStreak = 10
	want.Audio.Muted = true
	want.Audio.Volume = 0.25
	want.Logging.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"malformed", "[session\nwarning_intervals = 1", "parse config"},
		{"wrong type", "[palette]\nlimit = \"many\"", "parse config"},
		{"volume out of range", "[audio]\nvolume = 3.0", "audio.volume"},
		{"bad level", "[logging]\nlevel = \"loud\"", "logging.level"},
		{"non-positive warning", "[session]\nwarning_intervals = [0]", "warning_intervals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.toml", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) || !strings.Contains(err.Error(), path) {
				t.Errorf("error %q should mention %q and the path", err, tt.wantSub)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Default())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := writeFile(t, "config.toml", string(data))
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded): %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestratorDurations(t *testing.T) {
	c := Default().Orchestrator
	if got := c.PollInterval().Seconds(); got != 30 {
		t.Errorf("PollInterval = %vs, want 30s", got)
	}
	if got := c.SnapshotInterval().Minutes(); got != 5 {
		t.Errorf("SnapshotInterval = %vm, want 5m", got)
	}
}

func TestLoadShortcuts(t *testing.T) {
	path := writeFile(t, "palette.yaml", `
shortcuts:
  - label: Open CRM
    keywords: [hubspot, crm]
    run: xdg-open https://app.hubspot.com
  - label: Sync calendar
    category: action
    run: [ironlung-sync, "--calendar", "two words"]
`)
	got, err := LoadShortcuts(path)
	if err != nil {
		t.Fatalf("LoadShortcuts: %v", err)
	}
	want := []Shortcut{
		{
			Label:    "Open CRM",
			Category: "shortcut",
			Keywords: []string{"hubspot", "crm"},
			Run:      Argv{"xdg-open", "https://app.hubspot.com"},
		},
		{
			Label:    "Sync calendar",
			Category: "action",
			Run:      Argv{"ironlung-sync", "--calendar", "two words"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shortcuts mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadShortcutsMissingFile(t *testing.T) {
	got, err := LoadShortcuts(filepath.Join(t.TempDir(), "palette.yaml"))
	if err != nil || got != nil {
		t.Errorf("LoadShortcuts(missing) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestLoadShortcutsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no label", "shortcuts:\n  - run: ls\n"},
		{"no run", "shortcuts:\n  - label: Nothing\n"},
		{"run is a map", "shortcuts:\n  - label: Odd\n    run: {cmd: ls}\n"},
		{"malformed", "shortcuts: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadShortcuts(writeFile(t, "palette.yaml", tt.content)); err == nil {
				t.Error("LoadShortcuts succeeded, want error")
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	t.Run("IRONLUNG_HOME", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("IRONLUNG_HOME", home)
		t.Setenv("IRONLUNG_DB_PATH", "")
		t.Setenv("IRONLUNG_CONFIG", "")

		p, err := ResolvePaths()
		if err != nil {
			t.Fatalf("ResolvePaths: %v", err)
		}
		want := &Paths{
			Home:        home,
			LogsDir:     filepath.Join(home, "logs"),
			DBPath:      filepath.Join(home, "ironlung.db"),
			ConfigPath:  filepath.Join(home, "config.toml"),
			PalettePath: filepath.Join(home, "palette.yaml"),
		}
		if diff := cmp.Diff(want, p); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("specific overrides", func(t *testing.T) {
		t.Setenv("IRONLUNG_HOME", t.TempDir())
		t.Setenv("IRONLUNG_DB_PATH", "/tmp/custom.db")
		t.Setenv("IRONLUNG_CONFIG", "/tmp/custom.toml")

		p, err := ResolvePaths()
		if err != nil {
			t.Fatalf("ResolvePaths: %v", err)
		}
		if p.DBPath != "/tmp/custom.db" || p.ConfigPath != "/tmp/custom.toml" {
			t.Errorf("overrides ignored: %+v", p)
		}
	})

	t.Run("default home", func(t *testing.T) {
		fakeHome := t.TempDir()
		t.Setenv("HOME", fakeHome)
		t.Setenv("IRONLUNG_HOME", "")

		p, err := ResolvePaths()
		if err != nil {
			t.Fatalf("ResolvePaths: %v", err)
		}
		if p.Home != filepath.Join(fakeHome, ".ironlung") {
			t.Errorf("Home = %q, want under fake HOME", p.Home)
		}
	})
}

func TestEnsureDirs(t *testing.T) {
	t.Setenv("IRONLUNG_HOME", filepath.Join(t.TempDir(), "state"))
	p, err := ResolvePaths()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if _, err := os.Stat(p.LogsDir); err != nil {
		t.Errorf("logs dir missing: %v", err)
	}
}
