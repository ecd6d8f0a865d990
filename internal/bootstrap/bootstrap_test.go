package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ironlung/pkg/dopamine"
	"ironlung/pkg/protocol"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("IRONLUNG_HOME", home)
	t.Setenv("IRONLUNG_DB_PATH", "")
	t.Setenv("IRONLUNG_CONFIG", "")
	return home
}

func TestOpen_CreatesLayout(t *testing.T) {
	home := setHome(t)

	env, err := Open(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if env.Paths.Home != home {
		t.Errorf("Home = %q, want %q", env.Paths.Home, home)
	}
	for _, p := range []string{env.Paths.LogsDir, env.Paths.DBPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
	if env.Assistant.Palette.ItemCount() == 0 {
		t.Error("palette should have default items")
	}
}

func TestOpen_WinIsLoggedAndPersisted(t *testing.T) {
	home := setHome(t)
	ctx := context.Background()

	env, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := env.Assistant.RecordWin(ctx, dopamine.EmailSent, 9); err != nil {
		t.Fatalf("RecordWin: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, protocol.DopamineStateFile)); err != nil {
		t.Errorf("dopamine state not written: %v", err)
	}

	env, err = Open(ctx, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer env.Close()

	if got := env.Assistant.Dopamine.TotalWins(); got != 1 {
		t.Errorf("TotalWins after reopen = %d, want 1", got)
	}
	data, err := env.Assistant.Dashboard(ctx, 0)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.EmailsSent != 1 {
		t.Errorf("EmailsSent = %d, want 1", data.EmailsSent)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	home := setHome(t)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("[palette]\nlimit = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(context.Background(), Options{}); err == nil || !strings.Contains(err.Error(), "palette.limit") {
		t.Errorf("Open err = %v, want palette.limit validation error", err)
	}
}

func TestOpen_BrokenShortcutsAreSkipped(t *testing.T) {
	home := setHome(t)
	if err := os.WriteFile(filepath.Join(home, "palette.yaml"), []byte("shortcuts:\n  - label: \"\"\n    run: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	env, err := Open(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Open should tolerate a bad palette.yaml: %v", err)
	}
	defer env.Close()
}

func TestOpen_BellPlayer(t *testing.T) {
	home := setHome(t)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("[audio]\nbell = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var bell bytes.Buffer
	env, err := Open(context.Background(), Options{Bell: &bell})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if _, err := env.Assistant.RecordWin(context.Background(), dopamine.CardProcessed, 0); err != nil {
		t.Fatalf("RecordWin: %v", err)
	}
	if !strings.Contains(bell.String(), "\a") {
		t.Errorf("bell output = %q, want a BEL", bell.String())
	}
}
