package main

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ironlung/pkg/protocol"
)

// stateChangeMsg is sent when another process rewrites a state snapshot.
type stateChangeMsg struct{}

// watchedFiles are the snapshots other ironlung processes write.
var watchedFiles = map[string]bool{
	protocol.DopamineStateFile: true,
	protocol.SessionStateFile:  true,
}

// initWatcher watches the ironlung home directory. It returns nil when the
// watcher cannot be created; the dashboard then relies on its tick alone.
func initWatcher(dir string, logger *zap.Logger) *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("fsnotify unavailable, falling back to polling", zap.Error(err))
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		logger.Warn("fsnotify cannot watch home dir, falling back to polling",
			zap.String("dir", dir), zap.Error(err))
		return nil
	}
	return watcher
}

// waitForStateChange blocks until a watched snapshot changes and returns
// stateChangeMsg. Bursts within the debounce window collapse to one message.
// It returns nil only once the watcher is closed.
func waitForStateChange(watcher *fsnotify.Watcher, logger *zap.Logger) tea.Cmd {
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		return waitForEvents(watcher.Events, watcher.Errors, logger)
	}
}

// waitForEvents is the select loop behind waitForStateChange. Watcher errors
// such as a kernel queue overflow are logged and the watch continues.
func waitForEvents(events <-chan fsnotify.Event, errs <-chan error, logger *zap.Logger) tea.Msg {
	debounce := newDebounceTimer()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if watchedFiles[filepath.Base(event.Name)] {
				resetDebounceTimer(debounce)
			}

		case <-debounce.C:
			return stateChangeMsg{}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("fsnotify watcher error", zap.Error(err))
		}
	}
}

func newDebounceTimer() *time.Timer {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	return timer
}

func resetDebounceTimer(timer *time.Timer) {
	const debounceDuration = 100 * time.Millisecond
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}
