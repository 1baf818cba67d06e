package storage

import (
	"context"
	"errors"
)

// Slot names used by the stores. Each slot holds one JSON document that is
// rewritten whole on every mutation.
const (
	SlotUsers   = "users"
	SlotSession = "currentSession"
	SlotCart    = "cart"
)

// ErrSlotNotFound is returned by Get when the slot has never been written
// or has been removed.
var ErrSlotNotFound = errors.New("storage: slot not found")

// Backend is a persistent key-value slot store. Implementations must be
// safe for concurrent use; the stores additionally serialize their own
// read-modify-write cycles.
type Backend interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Set(ctx context.Context, slot string, value []byte) error
	Remove(ctx context.Context, slot string) error
}
