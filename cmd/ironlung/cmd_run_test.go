package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"ironlung/pkg/orchestrator"
)

func TestRunCmd_Once(t *testing.T) {
	isolate(t)

	out := mustExecCLI(t, "run", "--once")
	for _, want := range []string{"config loaded", "session ", "ran 3 tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("run --once missing %q:\n%s", want, out)
		}
	}

	// The session is left running for the dashboard.
	if out := mustExecCLI(t, "session", "status"); !strings.Contains(out, "session: active") {
		t.Errorf("session after run = %q", out)
	}
}

func TestRunCmd_RecoversExistingSession(t *testing.T) {
	isolate(t)

	start := mustExecCLI(t, "session", "start")
	out := mustExecCLI(t, "run", "--once")
	if !strings.Contains(out, "Session recovered") {
		t.Errorf("run should recover the running session:\n%s", out)
	}
	id := startedSessionID(t, start)
	if !strings.Contains(out, id) {
		t.Errorf("run should keep session %s:\n%s", id, out)
	}
}

// startedSessionID extracts the ID from the "session <id> started" line,
// skipping any notices printed before it.
func startedSessionID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "session "); ok {
			if id, ok := strings.CutSuffix(rest, " started"); ok && id != "" {
				return id
			}
		}
	}
	t.Fatalf("no session started line in:\n%s", out)
	return ""
}

func TestStartedSessionID_SkipsNotices(t *testing.T) {
	out := "Welcome back. Small steps count.\nsession 3f2a-77 started\n"
	if got := startedSessionID(t, out); got != "3f2a-77" {
		t.Errorf("startedSessionID = %q, want 3f2a-77", got)
	}
}

func TestRunCmd_StopsOnCancel(t *testing.T) {
	isolate(t)

	root := newRootCmd()
	var buf syncBuffer
	root.SetOut(&buf)
	root.SetArgs([]string{"run"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
	if !strings.Contains(buf.String(), "watching session") {
		t.Errorf("run output = %q", buf.String())
	}
}

func TestRegisterRunTasks(t *testing.T) {
	isolate(t)

	a, err := openApp(context.Background(), &syncBuffer{})
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()

	orch := orchestrator.New(orchestrator.Config{Logger: zap.NewNop()})
	registerRunTasks(orch, a)

	got := map[string]time.Duration{}
	for _, info := range orch.Tasks() {
		got[info.Name] = info.Interval
	}
	want := map[string]time.Duration{
		"time-warnings":     time.Minute,
		"recovery-snapshot": 5 * time.Minute,
		"reload-wins":       30 * time.Second,
	}
	for name, iv := range want {
		if got[name] != iv {
			t.Errorf("task %s interval = %v, want %v", name, got[name], iv)
		}
	}
}
