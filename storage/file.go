package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Backend persisted to a single JSON file mapping slot names to
// raw JSON documents. The whole file is rewritten on every Set/Remove,
// matching the snapshot-write contract of the stores. Writes go through a
// temp file and rename so a crash mid-write leaves the previous state.
type File struct {
	mu    sync.Mutex
	path  string
	slots map[string]json.RawMessage
}

// NewFile opens (or creates) the backing file at path. An unreadable or
// unparseable file starts empty rather than failing the open.
func NewFile(path string) (*File, error) {
	f := &File{
		path:  path,
		slots: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open storage file: %w", err)
	}

	if err := json.Unmarshal(data, &f.slots); err != nil {
		// Corrupt file: degrade to empty, same policy as the stores.
		f.slots = make(map[string]json.RawMessage)
	}
	return f, nil
}

func (f *File) Get(ctx context.Context, slot string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (f *File) Set(ctx context.Context, slot string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	f.slots[slot] = stored
	return f.flush()
}

func (f *File) Remove(ctx context.Context, slot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.slots, slot)
	return f.flush()
}

// flush rewrites the whole file. Caller holds f.mu.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

// Path returns the absolute path of the backing file, for logging.
func (f *File) Path() string {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return f.path
	}
	return abs
}
