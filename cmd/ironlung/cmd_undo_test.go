package main

import (
	"errors"
	"strings"
	"testing"
)

func TestUndoCmd_PushPeekPop(t *testing.T) {
	isolate(t)
	mustExecCLI(t, "session", "start")

	out := mustExecCLI(t, "undo", "push", "--type", "status_change", "--prospect", "42",
		"--before", "status=new", "--after", "status=contacted")
	if !strings.Contains(out, "depth 1") {
		t.Errorf("push output = %q", out)
	}
	mustExecCLI(t, "undo", "push", "--type", "note_added", "--prospect", "43")

	out = mustExecCLI(t, "undo", "list")
	if !strings.Contains(out, "1. status_change prospect=42") || !strings.Contains(out, "2. note_added prospect=43") {
		t.Errorf("list output = %q", out)
	}

	out = mustExecCLI(t, "undo", "peek")
	if !strings.Contains(out, `"note_added"`) {
		t.Errorf("peek should show newest action, got %q", out)
	}

	mustExecCLI(t, "undo", "pop")
	out = mustExecCLI(t, "undo")
	for _, want := range []string{`"status_change"`, `"status": "new"`, `"status": "contacted"`, "Undid status_change on prospect 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("bare undo missing %q:\n%s", want, out)
		}
	}

	if out := mustExecCLI(t, "undo", "peek"); !strings.Contains(out, "undo stack is empty") {
		t.Errorf("peek on empty = %q", out)
	}
	if out := mustExecCLI(t, "undo", "pop"); !strings.Contains(out, "Nothing to undo") {
		t.Errorf("pop on empty = %q", out)
	}
}

func TestUndoCmd_StackIsBounded(t *testing.T) {
	isolate(t)
	mustExecCLI(t, "session", "start")

	var out string
	for range 7 {
		out = mustExecCLI(t, "undo", "push", "--type", "skip")
	}
	if !strings.Contains(out, "depth 5") {
		t.Errorf("depth after 7 pushes = %q, want 5", out)
	}
}

func TestUndoCmd_RequiresSession(t *testing.T) {
	isolate(t)

	_, err := execCLI(t, "undo", "push", "--type", "skip")
	if !errors.Is(err, errNoSession) {
		t.Errorf("err = %v, want errNoSession", err)
	}
	if _, err := execCLI(t, "undo", "push"); err == nil {
		t.Error("push without --type should fail")
	}
}
