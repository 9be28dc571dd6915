package memory

import (
	"context"
	"sync"
	"time"

	"loadboard/pkg/models"
	"loadboard/storage"
)

type sessionEntry struct {
	state     *models.AuthState
	expiresAt time.Time
}

type sessionRepo struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	now     func() time.Time
}

func NewSessionRepo() storage.ISessionStorage {
	return &sessionRepo{
		entries: make(map[string]sessionEntry),
		now:     time.Now,
	}
}

func (r *sessionRepo) Save(ctx context.Context, key string, state *models.AuthState, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)
	e := sessionEntry{state: cloneState(state)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	r.entries[key] = e
	return nil
}

// prune drops expired entries. Callers hold r.mu.
func (r *sessionRepo) prune(now time.Time) {
	for key, e := range r.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(r.entries, key)
		}
	}
}

func (r *sessionRepo) Load(ctx context.Context, key string) (*models.AuthState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) {
		delete(r.entries, key)
		return nil, nil
	}
	return cloneState(e.state), nil
}

func (r *sessionRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

func cloneState(s *models.AuthState) *models.AuthState {
	if s == nil {
		return nil
	}
	return &models.AuthState{User: s.User.Clone(), IsAuthenticated: s.IsAuthenticated}
}
