package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/todo-go/internal/kv"
)

// StorageKey is the store key that holds the task list.
const StorageKey = "tasks"

// ErrIndexOutOfRange is returned when a positional index does not name a task.
var ErrIndexOutOfRange = errors.New("task index out of range")

// List is an ordered list of task texts.
type List []string

// Parse validates data against the task list schema and decodes it.
func Parse(data []byte) (List, error) {
	result := Validate(data)
	if !result.Valid {
		return nil, result.Err()
	}
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	if l == nil {
		l = List{}
	}
	return l, nil
}

// Marshal encodes the list as a JSON array. A nil list encodes as [].
func (l List) Marshal() ([]byte, error) {
	if l == nil {
		l = List{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal task list: %w", err)
	}
	return data, nil
}

// Load reads the task list from s. found is false when nothing is stored.
func Load(ctx context.Context, s kv.Store) (l List, found bool, err error) {
	raw, err := s.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return List{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read task list: %w", err)
	}
	l, err = Parse([]byte(raw))
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

// Save writes the whole list to s.
func (l List) Save(ctx context.Context, s kv.Store) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	if err := s.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("write task list: %w", err)
	}
	return nil
}

// Add returns a new list with text appended. The raw text is kept; it is
// only trimmed to decide whether it is empty. ok is false for blank text.
func (l List) Add(text string) (next List, ok bool) {
	if strings.TrimSpace(text) == "" {
		return l, false
	}
	next = make(List, len(l), len(l)+1)
	copy(next, l)
	return append(next, text), true
}

// Delete returns a new list without the element at index.
func (l List) Delete(index int) (List, error) {
	if index < 0 || index >= len(l) {
		return l, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l))
	}
	next := make(List, 0, len(l)-1)
	next = append(next, l[:index]...)
	return append(next, l[index+1:]...), nil
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}
