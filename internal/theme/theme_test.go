package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/nibzard/todo-go/internal/kv"
)

func TestLoadDefaultsToLight(t *testing.T) {
	s := New(kv.NewMemory())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DarkMode() {
		t.Error("expected dark mode off by default")
	}
	if s.Palette().Name != "light" {
		t.Errorf("palette: got %s", s.Palette().Name)
	}
}

func TestTogglePersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	first := New(store)
	if err := first.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := first.Toggle(ctx, true); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	restarted := New(store)
	if restarted.DarkMode() {
		t.Error("state before Load should be the default")
	}
	if err := restarted.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !restarted.DarkMode() {
		t.Error("expected dark mode after restart")
	}
	if restarted.Palette().Name != "dark" {
		t.Errorf("palette: got %s", restarted.Palette().Name)
	}
}

func TestToggleKeepsValueWhenWriteFails(t *testing.T) {
	store := kv.NewMemory()
	boom := errors.New("read-only")
	store.FailWrites = boom

	s := New(store)
	err := s.Toggle(context.Background(), true)
	if !errors.Is(err, boom) {
		t.Fatalf("Toggle error: got %v", err)
	}
	if !s.DarkMode() {
		t.Error("in-memory value should be kept after a failed write")
	}
}

func TestLoadErrorKeepsCurrentValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	s := New(store)
	_ = s.Toggle(ctx, true)

	store.FailReads = errors.New("boom")
	if err := s.Load(ctx); err == nil {
		t.Fatal("expected error")
	}
	if !s.DarkMode() {
		t.Error("value changed on failed load")
	}
}
