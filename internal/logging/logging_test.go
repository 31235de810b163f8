package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "text", false, false))

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "todo") {
		t.Errorf("expected prefix in %q", out)
	}
}

func TestRunLogger(t *testing.T) {
	t.Run("creates directory and file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs", "nested")
		r, err := NewRunLogger(dir)
		if err != nil {
			t.Fatalf("NewRunLogger: %v", err)
		}
		defer r.Close()

		if r.RunID == "" || filepath.Dir(r.LogPath) != dir {
			t.Errorf("unexpected logger %+v", r)
		}
		if _, err := os.Stat(r.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty dir returns error", func(t *testing.T) {
		if _, err := NewRunLogger(""); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("logger writes json", func(t *testing.T) {
		r, err := NewRunLogger(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		logger := r.Logger(OptionsFromConfig("debug", "text", false, false))
		logger.Debug("Task added", "count", 1)
		if err := r.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(r.LogPath)
		if err != nil {
			t.Fatal(err)
		}
		var entry map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
			t.Fatalf("not json: %q: %v", data, err)
		}
		if entry["msg"] != "Task added" {
			t.Errorf("entry %v", entry)
		}
	})

	t.Run("close nil logger", func(t *testing.T) {
		var r *RunLogger
		if err := r.Close(); err != nil {
			t.Errorf("got %v", err)
		}
	})
}

func writeRun(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindLogRuns(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeRun(t, dir, "20260101-000000-1.jsonl", base)
	newest := writeRun(t, dir, "20260101-000100-2.jsonl", base.Add(time.Minute))
	writeRun(t, dir, "notes.txt", base.Add(2*time.Minute))
	if err := os.Mkdir(filepath.Join(dir, "sub.jsonl"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := FindLogRuns(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Path != newest || runs[0].RunID != "20260101-000100-2" {
		t.Errorf("runs: %+v", runs)
	}

	latest, err := FindLatestLog(dir)
	if err != nil || latest != newest {
		t.Errorf("latest %q err=%v", latest, err)
	}

	missing, err := FindLatestLog(filepath.Join(dir, "missing"))
	if err != nil || missing != "" {
		t.Errorf("missing dir: %q %v", missing, err)
	}
}

func TestPruneRuns(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.jsonl", "b.jsonl", "c.jsonl"} {
		writeRun(t, dir, name, base.Add(time.Duration(i)*time.Minute))
	}

	removed, err := PruneRuns(dir, 1)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed %d", removed)
	}
	runs, _ := FindLogRuns(dir)
	if len(runs) != 1 || runs[0].RunID != "c" {
		t.Errorf("left %+v", runs)
	}
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	content := "line1\nline2\nline3\nline4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	t.Run("whole file when n is zero", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 0, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != content {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("last n lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 2, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "line3\nline4\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("more lines than file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 10, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != content {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := TailLog(ctx, &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope"), 0, false); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("follow stops with context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
		defer cancel()
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 1, true); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "line4\n" {
			t.Errorf("got %q", buf.String())
		}
	})
}
