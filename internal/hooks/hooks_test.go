// Package hooks provides tests for external notification hook invocation.
package hooks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts are POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "hook.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestInvoke tests the Invoke function with various scenarios.
func TestInvoke(t *testing.T) {
	t.Run("empty command returns success without running", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: "  "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("directory command returns error", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: t.TempDir()})
		if err == nil {
			t.Fatal("expected error for directory command, got nil")
		}
		if !strings.Contains(err.Error(), "is a directory") {
			t.Errorf("expected directory error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("missing command returns error", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{
			Command: filepath.Join(t.TempDir(), "nope"),
			Event:   "added",
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if result.ExitCode != -1 {
			t.Errorf("expected ExitCode -1, got %d", result.ExitCode)
		}
	})
}

// TestInvokeSuccessfulHook tests argument and stdin passing.
func TestInvokeSuccessfulHook(t *testing.T) {
	script := writeScript(t, `echo "$1|$2|$3|$TODO_NOTIFICATION_ID"
cat
`)

	result, err := Invoke(context.Background(), Options{
		Command:        script,
		Event:          "added",
		Title:          "Task Added",
		Body:           `"Buy milk" has been added to your tasks.`,
		NotificationID: "n-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Ran {
		t.Error("expected Ran to be true")
	}
	if result.ExitCode != 0 {
		t.Errorf("expected ExitCode 0, got %d", result.ExitCode)
	}

	lines := strings.SplitN(result.Output, "\n", 2)
	if len(lines) != 2 {
		t.Fatalf("unexpected output %q", result.Output)
	}
	want := `added|Task Added|"Buy milk" has been added to your tasks.|n-1`
	if lines[0] != want {
		t.Errorf("args: got %q, want %q", lines[0], want)
	}

	var p payload
	if err := json.Unmarshal([]byte(lines[1]), &p); err != nil {
		t.Fatalf("stdin payload: %v", err)
	}
	if p.Event != "added" || p.Title != "Task Added" || p.ID != "n-1" {
		t.Errorf("payload: %+v", p)
	}
}

// TestInvokeHookFailure tests a hook that returns non-zero exit code.
func TestInvokeHookFailure(t *testing.T) {
	script := writeScript(t, "echo failing >&2\nexit 42\n")

	result, err := Invoke(context.Background(), Options{
		Command: script,
		Event:   "cleared",
	})
	if err == nil {
		t.Fatal("expected error for failed hook, got nil")
	}
	if !result.Ran {
		t.Error("expected Ran to be true")
	}
	if result.ExitCode != 42 {
		t.Errorf("expected ExitCode 42, got %d", result.ExitCode)
	}
	if result.Output != "failing" {
		t.Errorf("expected captured stderr, got %q", result.Output)
	}
}

func TestCheck(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := Check(" "); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := Check(t.TempDir()); err == nil || !strings.Contains(err.Error(), "directory") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("executable script", func(t *testing.T) {
		path := writeScript(t, "exit 0\n")
		got, err := Check(path)
		if err != nil || got != path {
			t.Errorf("got %q %v", got, err)
		}
	})

	t.Run("not executable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("mode bits are not used on windows")
		}
		path := filepath.Join(t.TempDir(), "hook.sh")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Check(path); err == nil {
			t.Error("expected error")
		}
	})
}
