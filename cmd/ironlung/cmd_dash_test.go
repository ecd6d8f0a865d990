package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeDash installs an ironlung-dash shell script as the only binary on PATH.
func fakeDash(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, dashBinary), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestDashCmd_MissingBinary(t *testing.T) {
	isolate(t)
	t.Setenv("PATH", t.TempDir())

	_, err := execCLI(t, "dash")
	if err == nil || !strings.Contains(err.Error(), "ironlung-dash not found") {
		t.Errorf("dash without binary = %v", err)
	}
}

func TestDashCmd_PassesTotal(t *testing.T) {
	isolate(t)
	fakeDash(t, `echo "args: $*"`+"\n")

	out := mustExecCLI(t, "dash", "--total", "30")
	if !strings.Contains(out, "args: --total 30") {
		t.Errorf("dash output = %q", out)
	}
}

func TestDashCmd_ExitStatus(t *testing.T) {
	isolate(t)
	fakeDash(t, "exit 3\n")

	_, err := execCLI(t, "dash")
	if err == nil || !strings.Contains(err.Error(), "exited with status 3") {
		t.Errorf("dash with failing binary = %v", err)
	}
}
