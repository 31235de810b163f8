// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/notify"
)

// ToastDuration is how long a notification banner stays on screen.
const ToastDuration = 3 * time.Second

type tab int

const (
	tabTasks tab = iota
	tabSettings
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeConfirmClearData
)

// Options configures the TUI.
type Options struct {
	// Notifications feeds the toast banner, usually a notify.Channel.
	Notifications <-chan notify.Notification
	// Changes reports writes to the store made by other processes.
	Changes <-chan struct{}
}

// Run starts the TUI on the terminal and blocks until the user quits.
func Run(ctx context.Context, session *app.Session, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	if opts.Changes == nil {
		if w, ok := session.Store.(kv.Watcher); ok {
			changes, err := w.Watch(ctx)
			if err != nil {
				session.Logger.Warn("Store watch unavailable", "err", err)
			} else {
				opts.Changes = changes
			}
		}
	}

	model := New(ctx, session, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the root bubbletea model holding both tabs.
type Model struct {
	ctx      context.Context
	session  *app.Session
	tasks    *app.TaskList
	settings *app.Settings

	keys  KeyMap
	help  help.Model
	input textinput.Model

	tab    tab
	mode   uiMode
	cursor int
	width  int

	toast    *notify.Notification
	toastSeq int
	err      error

	notifications <-chan notify.Notification
	changes       <-chan struct{}
}

type mountedMsg struct{ err error }

type tasksMsg struct{ err error }

type settingsMsg struct{ err error }

type clearedMsg struct{ err error }

type notificationMsg struct{ n notify.Notification }

type notificationsClosedMsg struct{}

type storeChangedMsg struct{}

type toastExpiredMsg struct{ seq int }

// New builds the model. Controllers are mounted by Init.
func New(ctx context.Context, session *app.Session, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Add a new task..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	return &Model{
		ctx:           ctx,
		session:       session,
		tasks:         app.NewTaskList(session),
		settings:      app.NewSettings(session),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		input:         input,
		notifications: opts.Notifications,
		changes:       opts.Changes,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.mount()}
	if m.notifications != nil {
		cmds = append(cmds, waitForNotification(m.notifications))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case mountedMsg:
		m.err = msg.err
		m.clampCursor()
		return m, nil
	case tasksMsg:
		m.err = msg.err
		m.clampCursor()
		return m, nil
	case settingsMsg:
		m.err = msg.err
		return m, nil
	case clearedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.tasks.Reset()
			m.cursor = 0
		}
		return m, nil
	case notificationMsg:
		n := msg.n
		m.toast = &n
		m.toastSeq++
		return m, tea.Batch(waitForNotification(m.notifications), expireToast(m.toastSeq, ToastDuration))
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil
	case storeChangedMsg:
		return m, tea.Batch(m.reload(), waitForChange(m.changes))
	}

	if m.tab == tabTasks {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case m.mode == modeNormal && (key.Matches(msg, m.keys.NextTab) || key.Matches(msg, m.keys.PrevTab)):
		m.switchTab()
		return m, nil
	}

	if m.tab == tabSettings {
		return m.handleSettingsKey(msg)
	}
	return m.handleTasksKey(msg)
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		text := m.input.Value()
		if isBlank(text) {
			return m, nil
		}
		m.input.Reset()
		return m, m.add(text)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.tasks.Len()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if m.tasks.Len() == 0 {
			return m, nil
		}
		return m, m.delete(m.cursor)
	case key.Matches(msg, m.keys.ClearAll):
		return m, m.clear()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case msg.Type == tea.KeyEsc && m.input.Value() == "":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.settings.DismissMessage()
	if m.mode == modeConfirmClearData {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.mode = modeNormal
			return m, m.clearData()
		case key.Matches(msg, m.keys.Cancel):
			m.mode = modeNormal
			m.settings.CancelClearAllData()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleDark):
		return m, m.toggleDark(!m.settings.DarkMode())
	case key.Matches(msg, m.keys.ToggleNotifications):
		return m, m.toggleNotifications(!m.settings.NotificationsEnabled())
	case key.Matches(msg, m.keys.ClearData):
		m.settings.RequestClearAllData()
		m.mode = modeConfirmClearData
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) switchTab() {
	m.settings.DismissMessage()
	if m.tab == tabTasks {
		m.tab = tabSettings
		m.input.Blur()
		return
	}
	m.tab = tabTasks
	m.input.Focus()
}

func (m *Model) clampCursor() {
	n := m.tasks.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) mount() tea.Cmd {
	return func() tea.Msg {
		err := m.tasks.Mount(m.ctx)
		if serr := m.settings.Mount(m.ctx); err == nil {
			err = serr
		}
		return mountedMsg{err: err}
	}
}

func (m *Model) add(text string) tea.Cmd {
	return func() tea.Msg {
		return tasksMsg{err: m.tasks.Add(m.ctx, text)}
	}
}

func (m *Model) delete(index int) tea.Cmd {
	return func() tea.Msg {
		return tasksMsg{err: m.tasks.Delete(m.ctx, index)}
	}
}

func (m *Model) clear() tea.Cmd {
	return func() tea.Msg {
		return tasksMsg{err: m.tasks.Clear(m.ctx)}
	}
}

func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		return tasksMsg{err: m.tasks.Reload(m.ctx)}
	}
}

func (m *Model) toggleDark(value bool) tea.Cmd {
	return func() tea.Msg {
		return settingsMsg{err: m.settings.ToggleDarkMode(m.ctx, value)}
	}
}

func (m *Model) toggleNotifications(value bool) tea.Cmd {
	return func() tea.Msg {
		return settingsMsg{err: m.settings.ToggleNotifications(m.ctx, value)}
	}
}

func (m *Model) clearData() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{err: m.settings.ConfirmClearAllData(m.ctx)}
	}
}

func waitForNotification(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return notificationsClosedMsg{}
		}
		return notificationMsg{n: n}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func expireToast(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
