package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/output"
	"github.com/nibzard/todo-go/internal/theme"
)

func (m *Model) View() string {
	p := m.session.Theme.Palette()

	var b strings.Builder
	b.WriteString(p.Header.Render("Todo App"))
	b.WriteString("\n")
	b.WriteString(m.viewTabs(p))
	b.WriteString("\n\n")

	if m.tab == tabSettings {
		b.WriteString(m.viewSettings(p))
	} else {
		b.WriteString(m.viewTasks(p))
	}

	if m.toast != nil {
		b.WriteString("\n")
		b.WriteString(p.Toast.Render(p.Title.Render(m.toast.Title) + "\n" + m.toast.Body))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(p.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.currentHelp()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewTabs(p theme.Palette) string {
	tasks, settings := p.TabInactive, p.TabInactive
	if m.tab == tabTasks {
		tasks = p.TabActive
	} else {
		settings = p.TabActive
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tasks.Render("Tasks"), settings.Render("Settings"))
}

func (m *Model) viewTasks(p theme.Palette) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	tasks := m.tasks.Tasks()
	if len(tasks) == 0 {
		b.WriteString(p.Placeholder.Render(output.EmptyListMessage))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(p.Section.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	b.WriteString("\n")
	for i, text := range tasks {
		line := "  " + oneLine(text)
		style := p.Item
		if i == m.cursor {
			line = "› " + oneLine(text)
			style = p.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewSettings(p theme.Palette) string {
	snap := m.settings.Snapshot()

	var b strings.Builder
	b.WriteString(p.Section.Render("Appearance"))
	b.WriteString("\n")
	b.WriteString(p.Item.Render(toggleLine("Dark Mode", snap.DarkMode)))
	b.WriteString("\n")

	b.WriteString(p.Section.Render("Notifications"))
	b.WriteString("\n")
	b.WriteString(p.Item.Render(toggleLine("Enable Notifications", snap.NotificationsEnabled)))
	b.WriteString("\n")

	b.WriteString(p.Section.Render("Data"))
	b.WriteString("\n")
	b.WriteString(p.Item.Render(fmt.Sprintf("Total Tasks: %d", snap.TaskCount)))
	b.WriteString("\n")
	b.WriteString(p.Item.Render(p.Destructive.Render("Clear All Data")))
	b.WriteString("\n")

	if m.mode == modeConfirmClearData {
		b.WriteString("\n")
		b.WriteString(p.Card.Render(p.Title.Render("Clear All Data") + "\n" +
			"Are you sure you want to clear all data? This action cannot be undone.\n" +
			p.Destructive.Render("y: Clear") + "   n: Cancel"))
		b.WriteString("\n")
	}
	if msg := m.settings.Message(); msg != "" {
		b.WriteString("\n")
		b.WriteString(p.Card.Render(p.Title.Render("Success") + "\n" + msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.Footer.Render(m.settings.Footer()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) currentHelp() bindingSet {
	switch {
	case m.mode == modeConfirmClearData:
		return m.keys.confirmHelp()
	case m.tab == tabSettings:
		return m.keys.settingsHelp()
	default:
		return m.keys.tasksHelp()
	}
}

func toggleLine(label string, on bool) string {
	state := "[ off ]"
	if on {
		state = "[ on  ]"
	}
	return fmt.Sprintf("%-22s %s", label, state)
}

func oneLine(text string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
