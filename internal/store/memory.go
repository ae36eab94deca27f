package store

import (
	"context"

	"github.com/nhle/schedule/internal/model"
)

// Memory is a Store that keeps the encoded task list in memory. It goes
// through the same codec as SQLiteStore, so it serves as a drop-in fake.
type Memory struct {
	blob []byte
	set  bool

	// SaveErr, when non-nil, is returned by Save without storing anything.
	SaveErr error
	// Saves counts successful Save calls.
	Saves int
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory store holding raw as its stored value.
func NewMemoryWith(raw string) *Memory {
	return &Memory{blob: []byte(raw), set: true}
}

// Load decodes the held value; missing or malformed content yields an
// empty list.
func (m *Memory) Load(context.Context) ([]model.Task, error) {
	if !m.set {
		return []model.Task{}, nil
	}
	tasks, err := DecodeTasks(m.blob)
	if err != nil {
		return []model.Task{}, nil
	}
	return tasks, nil
}

// Save encodes and holds tasks.
func (m *Memory) Save(_ context.Context, tasks []model.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	m.blob = data
	m.set = true
	m.Saves++
	return nil
}

// Raw returns the held serialized value.
func (m *Memory) Raw() string {
	return string(m.blob)
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
