package storage

import (
	"context"
	"time"

	"loadboard/pkg/models"
)

type IStorage interface {
	Load() ILoadStorage
	Driver() IDriverStorage
	Close()
}

// ILoadStorage keeps postings in insertion order. AddInterest and CreateIfAbsent
// must be atomic: concurrent callers never produce a duplicate driver id or load id.
type ILoadStorage interface {
	GetAll(ctx context.Context) ([]*models.Load, error)
	GetByID(ctx context.Context, id string) (*models.Load, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*models.Load, error)
	GetByInterestedDriver(ctx context.Context, driverID string) ([]*models.Load, error)
	// Create appends load. Duplicate ids are backend specific: the memory store
	// appends them as-is, Postgres rejects them with a primary key violation.
	Create(ctx context.Context, load *models.Load) error
	CreateIfAbsent(ctx context.Context, load *models.Load) (bool, error)
	AddInterest(ctx context.Context, loadID, driverID string) (bool, error)
	RemoveInterest(ctx context.Context, loadID, driverID string) (bool, error)
}

type IDriverStorage interface {
	GetAll(ctx context.Context) ([]*models.Driver, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Driver, error)
}

// ISessionStorage persists the last known auth state of a session.
type ISessionStorage interface {
	Save(ctx context.Context, key string, state *models.AuthState, ttl time.Duration) error
	Load(ctx context.Context, key string) (*models.AuthState, error)
	Delete(ctx context.Context, key string) error
}
