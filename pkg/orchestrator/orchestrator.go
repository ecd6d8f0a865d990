// Package orchestrator runs recurring background tasks on a single polling
// goroutine. Each poll executes every due task in registration order; a task
// failure or panic is logged and recorded but never stops the loop.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopTimeout is returned by Stop when the loop does not exit in time.
var ErrStopTimeout = errors.New("orchestrator did not stop before timeout")

// Defaults.
const (
	DefaultPollInterval = 30 * time.Second
	DefaultStopTimeout  = 5 * time.Second
)

// TaskFunc is a unit of recurring work.
type TaskFunc func(ctx context.Context) error

// TaskInfo is a point-in-time view of a registered task.
type TaskInfo struct {
	Name     string
	Interval time.Duration
	LastRun  time.Time
	LastErr  error
	Runs     int
	Failures int
}

type task struct {
	TaskInfo
	fn TaskFunc
}

// due reports whether the task should run at now. A zero interval runs on
// every poll.
func (t *task) due(now time.Time) bool {
	return t.LastRun.IsZero() || now.Sub(t.LastRun) >= t.Interval
}

// Config configures an Orchestrator.
type Config struct {
	PollInterval time.Duration
	StopTimeout  time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
}

// Orchestrator schedules registered tasks.
type Orchestrator struct {
	cfg Config

	mu      sync.Mutex
	tasks   map[string]*task
	order   []string
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stopped Orchestrator with cfg defaults applied.
func New(cfg Config) *Orchestrator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{cfg: cfg, tasks: make(map[string]*task)}
}

// Register adds a task or replaces the function and interval of an existing
// one with the same name. Replacing keeps the task's run history.
func (o *Orchestrator) Register(name string, fn TaskFunc, interval time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if t, ok := o.tasks[name]; ok {
		t.fn = fn
		t.Interval = interval
		return
	}
	o.tasks[name] = &task{TaskInfo: TaskInfo{Name: name, Interval: interval}, fn: fn}
	o.order = append(o.order, name)
}

// Tasks returns a snapshot of every task in registration order.
func (o *Orchestrator) Tasks() []TaskInfo {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]TaskInfo, 0, len(o.order))
	for _, name := range o.order {
		out = append(out, o.tasks[name].TaskInfo)
	}
	return out
}

// Running reports whether the polling loop is active.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Start launches the polling loop. The first poll happens immediately.
// Calling Start while running is a no-op. The loop exits when ctx is
// cancelled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	o.running = true
	o.cancel = cancel
	o.done = make(chan struct{})
	go o.loop(loopCtx, o.done)

	o.cfg.Logger.Info("orchestrator started",
		zap.Duration("poll_interval", o.cfg.PollInterval),
		zap.Int("tasks", len(o.order)),
	)
}

// Stop signals the loop and waits up to the configured stop timeout for it to
// exit. Calling Stop when not running returns nil.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.cancel = nil
	o.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		o.cfg.Logger.Info("orchestrator stopped")
		return nil
	case <-time.After(o.cfg.StopTimeout):
		o.cfg.Logger.Warn("orchestrator stop timed out", zap.Duration("timeout", o.cfg.StopTimeout))
		return ErrStopTimeout
	}
}

func (o *Orchestrator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()

	o.RunDue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.RunDue(ctx)
		}
	}
}

// RunDue executes every task that is due, sequentially, and returns how many
// ran. It stops early if ctx is cancelled between tasks.
func (o *Orchestrator) RunDue(ctx context.Context) int {
	now := o.cfg.Now()

	o.mu.Lock()
	var due []*task
	for _, name := range o.order {
		if t := o.tasks[name]; t.due(now) {
			due = append(due, t)
		}
	}
	o.mu.Unlock()

	ran := 0
	for _, t := range due {
		if ctx.Err() != nil {
			break
		}
		o.mu.Lock()
		name, fn := t.Name, t.fn
		o.mu.Unlock()

		err := o.runTask(ctx, name, fn)

		o.mu.Lock()
		t.LastRun = o.cfg.Now()
		t.LastErr = err
		t.Runs++
		if err != nil {
			t.Failures++
		}
		o.mu.Unlock()
		ran++
	}
	return ran
}

// runTask calls fn, converting a panic into an error.
func (o *Orchestrator) runTask(ctx context.Context, name string, fn TaskFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", name, r)
		}
		if err != nil {
			o.cfg.Logger.Error("background task failed", zap.String("task", name), zap.Error(err))
		}
	}()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("task %s: %w", name, err)
	}
	return nil
}
