package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/notify"
	"github.com/nibzard/todo-go/internal/todo"
)

func newTestModel(t *testing.T, store *kv.Memory) (*Model, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	ctx := context.Background()
	s := app.NewSession(ctx, app.SessionOptions{Store: store, Notifier: rec, Version: "1.0.0"})
	m := New(ctx, s, Options{})
	send(t, m, m.mount()())
	return m, rec
}

// send feeds msg to the model and runs the returned command once, feeding
// its result back. Batches are expanded one level.
func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	run(t, m, cmd)
}

func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if out := c(); out != nil {
				m.Update(out)
			}
		}
	default:
		m.Update(msg)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeAndEnter(t *testing.T, m *Model, text string) {
	t.Helper()
	m.input.SetValue(text)
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestTasksTab(t *testing.T) {
	store := kv.NewMemory()
	m, rec := newTestModel(t, store)

	if !strings.Contains(m.View(), "No tasks yet. Add one!") {
		t.Fatalf("expected placeholder:\n%s", m.View())
	}

	typeAndEnter(t, m, "Buy milk")
	typeAndEnter(t, m, "Call mom")
	typeAndEnter(t, m, "   ")

	if got := m.tasks.Tasks(); len(got) != 2 || got[0] != "Buy milk" {
		t.Fatalf("tasks: %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
	if rec.Count() != 2 {
		t.Errorf("notifications: %d", rec.Count())
	}
	view := m.View()
	if !strings.Contains(view, "Buy milk") || !strings.Contains(view, "Call mom") {
		t.Errorf("view missing tasks:\n%s", view)
	}

	// Move to the second task and delete it.
	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor %d", m.cursor)
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := m.tasks.Tasks(); len(got) != 1 || got[0] != "Buy milk" {
		t.Fatalf("after delete: %v", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor should be clamped, got %d", m.cursor)
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if m.tasks.Len() != 0 {
		t.Errorf("after clear: %v", m.tasks.Tasks())
	}
	stored, _, err := todo.Load(context.Background(), store)
	if err != nil || len(stored) != 0 {
		t.Errorf("stored %v err=%v", stored, err)
	}
	if n, _ := rec.Last(); n.Title != "All Tasks Cleared" {
		t.Errorf("last notification %+v", n)
	}
}

func TestTypingGoesToInput(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	send(t, m, keyRunes("d"))
	send(t, m, keyRunes("x"))
	if m.input.Value() != "dx" {
		t.Errorf("input %q", m.input.Value())
	}
	if m.settings.DarkMode() {
		t.Error("letters on the tasks tab must not toggle settings")
	}
}

func TestDeleteOnEmptyListDoesNothing(t *testing.T) {
	store := kv.NewMemory()
	m, rec := newTestModel(t, store)
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.err != nil || rec.Count() != 0 || store.Writes != 0 {
		t.Errorf("err=%v sent=%d writes=%d", m.err, rec.Count(), store.Writes)
	}
}

func TestWriteFailureIsShown(t *testing.T) {
	store := kv.NewMemory()
	m, _ := newTestModel(t, store)
	store.FailWrites = errors.New("disk full")

	typeAndEnter(t, m, "Buy milk")
	if m.tasks.Len() != 0 {
		t.Errorf("failed add should not stick: %v", m.tasks.Tasks())
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

func TestSettingsTab(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := (todo.List{"a", "b"}).Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	m, _ := newTestModel(t, store)

	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabSettings {
		t.Fatal("expected settings tab")
	}
	view := m.View()
	for _, want := range []string{"Dark Mode", "Enable Notifications", "Total Tasks: 2", "Todo App v1.0.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	send(t, m, keyRunes("d"))
	if !m.session.Theme.DarkMode() || m.session.Theme.Palette().Name != "dark" {
		t.Error("expected dark mode")
	}

	send(t, m, keyRunes("n"))
	if m.settings.NotificationsEnabled() {
		t.Error("expected notifications off")
	}

	send(t, m, keyRunes("x"))
	if m.mode != modeConfirmClearData || !strings.Contains(m.View(), "cannot be undone") {
		t.Fatalf("expected confirmation:\n%s", m.View())
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeNormal {
		t.Fatal("esc should cancel")
	}
	if keys, _ := store.Keys(ctx); len(keys) == 0 {
		t.Fatal("cancel must keep data")
	}

	send(t, m, keyRunes("x"))
	send(t, m, keyRunes("y"))
	if keys, _ := store.Keys(ctx); len(keys) != 0 {
		t.Errorf("keys left: %v", keys)
	}
	view = m.View()
	if !strings.Contains(view, "All data has been cleared.") || !strings.Contains(view, "Total Tasks: 0") {
		t.Errorf("unexpected view:\n%s", view)
	}
	if m.session.Theme.DarkMode() || !m.settings.NotificationsEnabled() {
		t.Error("settings should return to defaults")
	}
	if m.tasks.Len() != 0 {
		t.Error("task list should be emptied")
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabTasks {
		t.Error("expected tasks tab")
	}
}

func TestClearedMessageIsDismissed(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	send(t, m, keyRunes("x"))
	send(t, m, keyRunes("y"))
	if !strings.Contains(m.View(), "All data has been cleared.") {
		t.Fatalf("expected success card:\n%s", m.View())
	}

	t.Run("next key press", func(t *testing.T) {
		send(t, m, keyRunes("z"))
		if strings.Contains(m.View(), "All data has been cleared.") {
			t.Errorf("success card still shown:\n%s", m.View())
		}
	})

	t.Run("tab switch", func(t *testing.T) {
		send(t, m, keyRunes("x"))
		send(t, m, keyRunes("y"))
		send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
		send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if strings.Contains(m.View(), "All data has been cleared.") {
			t.Errorf("success card still shown:\n%s", m.View())
		}
	})
}

func TestDeleteKeyEditsInput(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := (todo.List{"keep"}).Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	m, rec := newTestModel(t, store)

	send(t, m, keyRunes("ab"))
	send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	send(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	if m.tasks.Len() != 1 {
		t.Fatalf("delete key removed a task: %v", m.tasks.Tasks())
	}
	if got := m.input.Value(); got != "a" {
		t.Errorf("input %q, want %q", got, "a")
	}
	if rec.Count() != 0 {
		t.Errorf("unexpected notifications: %d", rec.Count())
	}
}

func TestToast(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	m.Update(notificationMsg{n: notify.Notification{Title: "Task Added", Body: `"x" has been added to your tasks.`}})
	if !strings.Contains(m.View(), "Task Added") {
		t.Fatalf("expected toast:\n%s", m.View())
	}

	stale := toastExpiredMsg{seq: m.toastSeq - 1}
	m.Update(stale)
	if m.toast == nil {
		t.Fatal("stale expiry should not hide the newer toast")
	}
	m.Update(toastExpiredMsg{seq: m.toastSeq})
	if m.toast != nil {
		t.Error("toast should expire")
	}
}

func TestExternalChangeReloads(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	m, _ := newTestModel(t, store)

	if err := (todo.List{"from elsewhere"}).Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	send(t, m, storeChangedMsg{})
	if got := m.tasks.Tasks(); len(got) != 1 || got[0] != "from elsewhere" {
		t.Errorf("got %v", got)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a terminal")
	}
}
