package store

import (
	"context"

	"github.com/nhle/schedule/internal/model"
)

// Store persists the whole task list as one serialized value.
//
// Load never fails because of missing or unreadable content: both yield an
// empty list. Only a failure of the underlying storage is returned.
// Save overwrites everything written before.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
	Close() error
}
