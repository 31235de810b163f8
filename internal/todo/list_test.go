package todo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nibzard/todo-go/internal/kv"
)

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	l, found, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load empty store: %v", err)
	}
	if found {
		t.Error("expected found=false for empty store")
	}
	if len(l) != 0 {
		t.Errorf("expected empty list, got %v", l)
	}

	original := List{"Buy milk", "  padded  "}
	if err := original.Save(ctx, store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := store.Get(ctx, StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if raw != `["Buy milk","  padded  "]` {
		t.Errorf("stored value: got %s", raw)
	}

	loaded, found, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Error("expected found=true")
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("Load: got %v, want %v", loaded, original)
	}
}

func TestSaveNilListWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	var l List
	if err := l.Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	raw, _ := store.Get(ctx, StorageKey)
	if raw != "[]" {
		t.Errorf("got %s, want []", raw)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name   string
		list   List
		text   string
		want   List
		wantOK bool
	}{
		{name: "append to empty", list: List{}, text: "Buy milk", want: List{"Buy milk"}, wantOK: true},
		{name: "keeps insertion order", list: List{"a"}, text: "b", want: List{"a", "b"}, wantOK: true},
		{name: "keeps raw text", list: nil, text: " x ", want: List{" x "}, wantOK: true},
		{name: "whitespace only", list: List{"a"}, text: " \t\n", want: List{"a"}, wantOK: false},
		{name: "empty", list: List{"a"}, text: "", want: List{"a"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.list.Add(tt.text)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddDoesNotAliasOriginal(t *testing.T) {
	base := make(List, 1, 8)
	base[0] = "a"
	first, _ := base.Add("b")
	second, _ := base.Add("c")
	if first[1] != "b" || second[1] != "c" {
		t.Errorf("appends share storage: %v %v", first, second)
	}
}

func TestDelete(t *testing.T) {
	l := List{"a", "b", "c"}

	got, err := l.Delete(1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !reflect.DeepEqual(got, List{"a", "c"}) {
		t.Errorf("got %v, want [a c]", got)
	}
	if !reflect.DeepEqual(l, List{"a", "b", "c"}) {
		t.Errorf("original mutated: %v", l)
	}

	for _, idx := range []int{-1, 3, 10} {
		if _, err := l.Delete(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Delete(%d): got %v, want ErrIndexOutOfRange", idx, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		want     List
		wantErr  bool
		errMatch string
	}{
		{name: "empty array", data: `[]`, want: List{}},
		{name: "strings", data: `["a","b"]`, want: List{"a", "b"}},
		{name: "not JSON", data: `[`, wantErr: true, errMatch: "not valid JSON"},
		{name: "object", data: `{"tasks":[]}`, wantErr: true},
		{name: "null", data: `null`, wantErr: true},
		{name: "number item", data: `["a", 2]`, wantErr: true, errMatch: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if tt.errMatch != "" && !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("error %q does not contain %q", err, tt.errMatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadRejectsInvalidStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, StorageKey, `[1,2]`); err != nil {
		t.Fatal(err)
	}
	_, _, err := Load(ctx, store)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected *ValidationError in chain, got %T: %v", err, err)
	}
}

func TestLoadPropagatesReadError(t *testing.T) {
	store := kv.NewMemory()
	boom := errors.New("disk gone")
	store.FailReads = boom
	if _, _, err := Load(context.Background(), store); !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped %v", err, boom)
	}
}
