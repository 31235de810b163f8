// Package app holds the session shared by the screens and the controllers
// behind the Tasks and Settings screens.
//
// The controllers own the in-memory state and talk to the store and the
// notification service. The TUI and the CLI both drive them; neither keeps
// task or preference state of its own.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/notify"
	"github.com/nibzard/todo-go/internal/theme"
	"github.com/nibzard/todo-go/internal/todo"
)

var (
	// ErrEmptyTask is returned when the task text is blank.
	ErrEmptyTask = errors.New("task text is empty")
	// ErrIndexOutOfRange is returned when a delete names no task.
	ErrIndexOutOfRange = todo.ErrIndexOutOfRange
	// ErrNoClearPending is returned when a wipe is confirmed without being
	// requested first.
	ErrNoClearPending = errors.New("clear all data was not requested")
)

// Session is passed to every screen. It replaces process-wide state: the
// store, the theme and the notification service all hang off it.
type Session struct {
	Store   kv.Store
	Theme   *theme.State
	Notify  *notify.Service
	Logger  *log.Logger
	Version string
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	Store    kv.Store
	Notifier notify.Notifier
	Logger   *log.Logger
	Version  string
}

// NewSession builds a session and loads the theme from the store. A theme
// read failure is logged and the default theme is used.
func NewSession(ctx context.Context, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		Store:   opts.Store,
		Theme:   theme.New(opts.Store),
		Notify:  notify.NewService(opts.Store, opts.Notifier, notify.WithLogger(logger)),
		Logger:  logger,
		Version: opts.Version,
	}
	if err := s.Theme.Load(ctx); err != nil {
		logger.Error("Error loading theme", "err", err)
	}
	return s
}

// Close releases the store.
func (s *Session) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}
	return s.Store.Close()
}
