// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/todo"
)

// Format selects how command results are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EmptyListMessage is printed for an empty task list.
const EmptyListMessage = "No tasks yet. Add one!"

// ParseFormat parses an --output value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
	}
}

// Task is one entry of a structured listing. Index is 1-based, matching
// the rm command.
type Task struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// Tasks writes the list in the given format.
func Tasks(w io.Writer, format Format, list todo.List) error {
	switch format {
	case FormatJSON, FormatYAML:
		items := make([]Task, 0, len(list))
		for i, text := range list {
			items = append(items, Task{Index: i + 1, Text: text})
		}
		return encode(w, format, items)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(w, EmptyListMessage)
		return err
	}
	for i, text := range list {
		if err := FormatTask(w, i+1, text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTask formats a task line.
// Format: "{N:>4}  {TEXT}\n" (4-wide right-aligned number, two spaces, text)
func FormatTask(w io.Writer, num int, text string) error {
	_, err := fmt.Fprintf(w, "%4d  %s\n", num, normalizeText(text))
	return err
}

// Settings writes the settings snapshot in the given format.
func Settings(w io.Writer, format Format, s app.Snapshot) error {
	switch format {
	case FormatJSON, FormatYAML:
		return encode(w, format, s)
	}

	_, err := fmt.Fprintf(w, "%-15s%s\n%-15s%s\n%-15s%d\n\nTodo App v%s\n",
		"Dark mode:", onOff(s.DarkMode),
		"Notifications:", onOff(s.NotificationsEnabled),
		"Tasks:", s.TaskCount,
		s.Version,
	)
	return err
}

func encode(w io.Writer, format Format, v any) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// normalizeText keeps a task on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
