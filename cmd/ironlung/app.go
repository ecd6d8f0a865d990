package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ironlung/internal/bootstrap"
	"ironlung/pkg/assistant"
)

// app is the environment a command runs in. Close it when the command ends.
type app struct {
	*bootstrap.Env
}

// openApp opens the ironlung environment and prints assistant notices to out.
func openApp(ctx context.Context, out io.Writer) (*app, error) {
	env, err := bootstrap.Open(ctx, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	env.Assistant.OnNotice(func(n assistant.Notice) {
		fmt.Fprintln(out, renderNotice(n))
	})
	return &app{Env: env}, nil
}

// errNoSession is returned by commands that need a running session.
var errNoSession = errors.New("no active session (run: ironlung session start)")

// requireSession recovers the session persisted by an earlier invocation.
func (a *app) requireSession() error {
	if a.Assistant.Session.IsActive() || a.Assistant.Session.LoadSessionState() {
		return nil
	}
	return errNoSession
}
