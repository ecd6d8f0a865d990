package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ironlung/pkg/assistant"
	"ironlung/pkg/dopamine"
	"ironlung/pkg/protocol"
	"ironlung/pkg/session"
)

func TestWaitForStateChange_WatchedFile(t *testing.T) {
	dir := t.TempDir()
	watcher := initWatcher(dir, zap.NewNop())
	if watcher == nil {
		t.Fatal("initWatcher returned nil")
	}
	defer watcher.Close()

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- waitForStateChange(watcher, zap.NewNop())() }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, protocol.DopamineStateFile), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-msgs:
		if _, ok := msg.(stateChangeMsg); !ok {
			t.Errorf("got %T, want stateChangeMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for stateChangeMsg")
	}
}

func TestWaitForStateChange_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watcher := initWatcher(dir, zap.NewNop())
	if watcher == nil {
		t.Fatal("initWatcher returned nil")
	}

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- waitForStateChange(watcher, zap.NewNop())() }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ironlung.db-wal"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-msgs:
		t.Fatalf("unexpected %T for an unwatched file", msg)
	case <-time.After(300 * time.Millisecond):
	}

	// Closing the watcher ends the wait with nil.
	_ = watcher.Close()
	select {
	case msg := <-msgs:
		if msg != nil {
			t.Errorf("got %T after close, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after close")
	}
}

func TestInitWatcher_MissingDir(t *testing.T) {
	if w := initWatcher(filepath.Join(t.TempDir(), "missing"), zap.NewNop()); w != nil {
		_ = w.Close()
		t.Error("initWatcher should return nil for a missing dir")
	}
	if cmd := waitForStateChange(nil, zap.NewNop()); cmd != nil {
		t.Error("nil watcher should yield a nil cmd")
	}
}

func TestStateChangeReloadsWins(t *testing.T) {
	dir := t.TempDir()
	dash := assistant.New(assistant.Options{DataDir: dir})
	m := newModel(Deps{Assistant: dash})

	// Another process records a win and starts a session.
	cli := assistant.New(assistant.Options{DataDir: dir})
	cli.Dopamine.RecordWin(dopamine.CallCompleted)
	cli.StartSession()

	updated, cmd := m.Update(stateChangeMsg{})
	m = updated.(Model)
	m = drain(t, m, cmd)

	if got := m.asst.Dopamine.TotalWins(); got != 1 {
		t.Errorf("TotalWins after reload = %d, want 1", got)
	}
	if !m.asst.Session.IsActive() {
		t.Error("dashboard should pick up the session started elsewhere")
	}
	if m.data.CurrentStreak != 1 {
		t.Errorf("stats streak = %d, want 1", m.data.CurrentStreak)
	}
}

func TestWaitForEvents_ContinuesAfterError(t *testing.T) {
	events := make(chan fsnotify.Event, 1)
	errs := make(chan error, 1)
	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- waitForEvents(events, errs, zap.NewNop()) }()

	errs <- fsnotify.ErrEventOverflow
	events <- fsnotify.Event{Name: filepath.Join(t.TempDir(), protocol.SessionStateFile), Op: fsnotify.Write}

	select {
	case msg := <-msgs:
		if _, ok := msg.(stateChangeMsg); !ok {
			t.Errorf("got %T, want stateChangeMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop stopped after a watcher error")
	}
}

func TestWaitForEvents_ClosedChannels(t *testing.T) {
	t.Run("events closed", func(t *testing.T) {
		events := make(chan fsnotify.Event)
		close(events)
		if msg := waitForEvents(events, make(chan error), zap.NewNop()); msg != nil {
			t.Errorf("got %T, want nil", msg)
		}
	})

	t.Run("errors closed", func(t *testing.T) {
		errs := make(chan error)
		close(errs)
		if msg := waitForEvents(make(chan fsnotify.Event), errs, zap.NewNop()); msg != nil {
			t.Errorf("got %T, want nil", msg)
		}
	})

	t.Run("error then close", func(t *testing.T) {
		errs := make(chan error, 1)
		errs <- errors.New("boom")
		close(errs)
		if msg := waitForEvents(make(chan fsnotify.Event), errs, zap.NewNop()); msg != nil {
			t.Errorf("got %T, want nil", msg)
		}
	})
}

func TestStateChangeEndsSessionEndedElsewhere(t *testing.T) {
	dir := t.TempDir()
	c := &clock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}
	dash := assistant.New(assistant.Options{DataDir: dir, Now: c.Now})
	m := newModel(Deps{Assistant: dash, Now: c.Now})
	m, _ = press(t, m, runes("S"))

	// The CLI adopts the session and ends it.
	cli := assistant.New(assistant.Options{DataDir: dir, Now: c.Now})
	if !cli.Recover() {
		t.Fatal("cli should recover the dashboard session")
	}
	if err := cli.EndSession(); err != nil {
		t.Fatal(err)
	}

	updated, cmd := m.Update(stateChangeMsg{})
	m = drain(t, updated.(Model), cmd)
	if m.asst.Session.IsActive() {
		t.Fatal("dashboard kept a session ended elsewhere")
	}

	c.t = c.t.Add(6 * time.Minute)
	m = m.onTick()
	if _, err := os.Stat(filepath.Join(dir, protocol.SessionStateFile)); !os.IsNotExist(err) {
		t.Errorf("tick rewrote the ended session snapshot: %v", err)
	}
	if assistant.New(assistant.Options{DataDir: dir, Now: c.Now}).Recover() {
		t.Error("ended session is recoverable again")
	}
}

func TestUndoKeySnapshots(t *testing.T) {
	dir := t.TempDir()
	c := &clock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)}
	dash := assistant.New(assistant.Options{DataDir: dir, Now: c.Now})
	m := newModel(Deps{Assistant: dash, Now: c.Now})
	m, _ = press(t, m, runes("S"))
	dash.Session.PushUndo(session.UndoableAction{ActionType: "status_change", ProspectID: 7})
	if err := dash.Snapshot(); err != nil {
		t.Fatal(err)
	}

	m, _ = press(t, m, runes("u"))
	if m.err != nil {
		t.Fatal(m.err)
	}
	cli := assistant.New(assistant.Options{DataDir: dir, Now: c.Now})
	if !cli.Recover() {
		t.Fatal("session should be recoverable")
	}
	if got := cli.Session.UndoDepth(); got != 0 {
		t.Errorf("UndoDepth seen by another process = %d, want 0", got)
	}
}
