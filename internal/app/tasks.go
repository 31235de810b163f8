package app

import (
	"context"
	"sync"

	"github.com/nibzard/todo-go/internal/todo"
)

// TaskList is the controller behind the Tasks screen.
//
// Every mutation writes the whole list. When a write fails the in-memory
// list is restored to the last persisted one, the error is returned and no
// notification is sent.
type TaskList struct {
	session *Session

	mu        sync.Mutex
	tasks     todo.List
	persisted todo.List
}

// NewTaskList returns an empty controller. Call Mount to load stored tasks.
func NewTaskList(s *Session) *TaskList {
	return &TaskList{session: s, tasks: todo.List{}, persisted: todo.List{}}
}

// Mount requests notification permission and loads the stored list. The
// permission result is ignored.
func (t *TaskList) Mount(ctx context.Context) error {
	t.session.Notify.RequestPermission(ctx)
	return t.Reload(ctx)
}

// Reload re-reads the list from the store. When nothing is stored the
// in-memory list is kept. On error the in-memory list is unchanged.
func (t *TaskList) Reload(ctx context.Context) error {
	loaded, found, err := todo.Load(ctx, t.session.Store)
	if err != nil {
		t.session.Logger.Error("Error loading tasks", "err", err)
		return err
	}
	if !found {
		return nil
	}
	t.mu.Lock()
	t.tasks = loaded
	t.persisted = loaded.Clone()
	t.mu.Unlock()
	return nil
}

// Tasks returns a copy of the current list.
func (t *TaskList) Tasks() todo.List {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tasks.Clone()
}

// Len returns the number of tasks.
func (t *TaskList) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)
}

// Add appends text and notifies. Blank text returns ErrEmptyTask and
// changes nothing.
func (t *TaskList) Add(ctx context.Context, text string) error {
	t.mu.Lock()
	next, ok := t.tasks.Add(text)
	if !ok {
		t.mu.Unlock()
		return ErrEmptyTask
	}
	err := t.commitLocked(ctx, next)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.session.Logger.Debug("Task added", "count", len(next))
	if _, err := t.session.Notify.TaskAdded(ctx, text); err != nil {
		t.session.Logger.Warn("Task added but notification failed", "err", err)
	}
	return nil
}

// Delete removes the task at the zero-based index and notifies. Indexes are
// positional: whatever is at index now is removed.
func (t *TaskList) Delete(ctx context.Context, index int) error {
	t.mu.Lock()
	next, err := t.tasks.Delete(index)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	err = t.commitLocked(ctx, next)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.session.Logger.Debug("Task deleted", "index", index, "count", len(next))
	if _, err := t.session.Notify.TaskDeleted(ctx); err != nil {
		t.session.Logger.Warn("Task deleted but notification failed", "err", err)
	}
	return nil
}

// Clear empties the list and notifies.
func (t *TaskList) Clear(ctx context.Context) error {
	t.mu.Lock()
	err := t.commitLocked(ctx, todo.List{})
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.session.Logger.Debug("Tasks cleared")
	if _, err := t.session.Notify.AllTasksCleared(ctx); err != nil {
		t.session.Logger.Warn("Tasks cleared but notification failed", "err", err)
	}
	return nil
}

// Reset drops the in-memory list without writing. It is used after the
// whole store has been wiped.
func (t *TaskList) Reset() {
	t.mu.Lock()
	t.tasks = todo.List{}
	t.persisted = todo.List{}
	t.mu.Unlock()
}

// commitLocked applies next and persists it, restoring the last persisted
// list when the write fails. t.mu must be held.
func (t *TaskList) commitLocked(ctx context.Context, next todo.List) error {
	t.tasks = next
	if err := next.Save(ctx, t.session.Store); err != nil {
		t.session.Logger.Error("Error saving tasks", "err", err)
		t.tasks = t.persisted.Clone()
		return err
	}
	t.persisted = next.Clone()
	return nil
}
