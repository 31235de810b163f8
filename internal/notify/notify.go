// Package notify sends immediate local notifications for task events.
//
// A Service checks the persisted notification preference and hands each
// notification to a Notifier. Notifiers are the delivery backends: the
// desktop notification daemon, a JSON lines log, an external hook command
// and the in-process channel the TUI listens on. Multi combines several.
package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/prefs"
)

// Priority is the delivery priority requested from the platform.
type Priority string

const (
	PriorityDefault Priority = "default"
	PriorityHigh    Priority = "high"
)

// Event names the task event a notification reports.
type Event string

const (
	EventAdded   Event = "added"
	EventDeleted Event = "deleted"
	EventCleared Event = "cleared"
	EventTest    Event = "test"
)

// Notification is a single immediate notification.
type Notification struct {
	ID        string    `json:"id"`
	Event     Event     `json:"event"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Sound     bool      `json:"sound"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier delivers notifications to one backend.
type Notifier interface {
	Name() string
	// RequestPermission reports whether the backend can deliver.
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, n Notification) error
}

// Service is the notification entry point used by the screens.
type Service struct {
	store    kv.Store
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for swallowed errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the notification timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides notification id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService returns a service that reads the preference from store and
// delivers through n.
func NewService(store kv.Store, n Notifier, opts ...Option) *Service {
	if n == nil {
		n = Multi{}
	}
	s := &Service{
		store:    store,
		notifier: n,
		logger:   log.New(io.Discard),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifier returns the backend the service delivers through.
func (s *Service) Notifier() Notifier {
	return s.notifier
}

// RequestPermission asks the backend for permission. Failures are logged
// and reported as denied.
func (s *Service) RequestPermission(ctx context.Context) bool {
	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn("Notification permission request failed", "notifier", s.notifier.Name(), "err", err)
		return false
	}
	if !granted {
		s.logger.Info("Notification permission not granted", "notifier", s.notifier.Name())
	}
	return granted
}

// IsEnabled reads the notification preference. An unset preference means
// enabled; a read error means disabled.
func (s *Service) IsEnabled(ctx context.Context) bool {
	enabled, err := prefs.NotificationsEnabled(ctx, s.store)
	if err != nil {
		s.logger.Error("Error checking notification settings", "err", err)
		return false
	}
	return enabled
}

// FireImmediate sends a notification with no delay, sound on and high
// priority. It returns the notification id, or "" when notifications are
// disabled. Delivery errors are logged and returned.
func (s *Service) FireImmediate(ctx context.Context, title, body string) (string, error) {
	return s.fire(ctx, EventTest, title, body)
}

// TaskAdded reports a newly added task by its raw text.
func (s *Service) TaskAdded(ctx context.Context, name string) (string, error) {
	return s.fire(ctx, EventAdded, "Task Added", fmt.Sprintf(`"%s" has been added to your tasks.`, name))
}

// TaskDeleted reports a removed task.
func (s *Service) TaskDeleted(ctx context.Context) (string, error) {
	return s.fire(ctx, EventDeleted, "Task Deleted", "A task has been removed from your list.")
}

// AllTasksCleared reports that the list was emptied.
func (s *Service) AllTasksCleared(ctx context.Context) (string, error) {
	return s.fire(ctx, EventCleared, "All Tasks Cleared", "All tasks have been cleared from your list.")
}

func (s *Service) fire(ctx context.Context, event Event, title, body string) (string, error) {
	if !s.IsEnabled(ctx) {
		s.logger.Debug("Notifications disabled, skipping", "event", event)
		return "", nil
	}

	n := Notification{
		ID:        s.newID(),
		Event:     event,
		Title:     title,
		Body:      body,
		Sound:     true,
		Priority:  PriorityHigh,
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Error("Error scheduling notification", "event", event, "id", n.ID, "err", err)
		return n.ID, err
	}
	s.logger.Debug("Notification sent", "event", event, "id", n.ID, "notifier", s.notifier.Name())
	return n.ID, nil
}
