package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"
)

// runLog prints the progress of "ironlung run": completed steps, notices from
// background tasks, and a spinner while the loop is running.
type runLog struct {
	w     io.Writer
	isTTY bool
	mu    sync.Mutex
}

// newRunLog creates a runLog. isTTY enables the animated spinner and line
// clearing; otherwise every line is printed once.
func newRunLog(w io.Writer, isTTY bool) *runLog {
	return &runLog{w: w, isTTY: isTTY}
}

// stdoutIsTTY reports whether os.Stdout is an interactive terminal.
func stdoutIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Step prints a completed step with a checkmark.
func (l *runLog) Step(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s\n", okStyle.Render("✓"), msg)
}

// Write prints p on its own line, clearing a spinner frame first in TTY mode.
// It lets notices from background tasks share the output with the spinner.
func (l *runLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.isTTY {
		fmt.Fprint(l.w, "\r\x1b[K")
	}
	return l.w.Write(p)
}

// StartSpinner shows msg with a spinner until the returned stop function is
// called, which prints the final checkmark. Without a TTY it prints msg once.
func (l *runLog) StartSpinner(msg string) func() {
	if !l.isTTY {
		l.mu.Lock()
		fmt.Fprintf(l.w, "%s\n", msg)
		l.mu.Unlock()

		return func() { l.Step(msg) }
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)

	frames := spinner.MiniDot.Frames
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinner.MiniDot.FPS)
		defer ticker.Stop()

		for i := 0; ; i = (i + 1) % len(frames) {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.mu.Lock()
				fmt.Fprintf(l.w, "\r%s %s", frames[i], msg)
				l.mu.Unlock()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()

			l.mu.Lock()
			defer l.mu.Unlock()
			fmt.Fprintf(l.w, "\r%s %s\n", okStyle.Render("✓"), msg)
		})
	}
}
