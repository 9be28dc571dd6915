package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/pkg/seed"
	"loadboard/storage"
)

// AuthService hands out one AuthStore per session id.
type AuthService interface {
	Open(ctx context.Context, sessionID string) *AuthStore
	Login(ctx context.Context, sessionID string, user *models.User) (*AuthStore, error)
	LoginDemo(ctx context.Context, sessionID string, role models.Role) (*AuthStore, error)
	UpdateSubscription(ctx context.Context, sessionID string, tier models.SubscriptionTier) (models.AuthState, error)
	Logout(ctx context.Context, sessionID string) models.AuthState
	Close(sessionID string)
}

type session struct {
	store    *AuthStore
	lastSeen time.Time
}

type authService struct {
	stg storage.ISessionStorage
	ttl time.Duration
	log logger.ILogger

	now func() time.Time

	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time
}

func NewAuthService(stg storage.ISessionStorage, ttl time.Duration, log logger.ILogger) AuthService {
	return &authService{
		stg:      stg,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Open returns the session's store, restoring persisted state the first time.
// Stores idle for longer than the session TTL are dropped from the registry;
// their state stays in storage for the next Open.
func (s *authService) Open(ctx context.Context, sessionID string) *AuthStore {
	if store := s.lookup(sessionID); store != nil {
		return store
	}

	// restore outside the lock so slow storage does not stall other sessions
	fresh := NewAuthStore(sessionID, s.stg, s.ttl, s.log)
	fresh.Restore(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.lastSeen = s.now()
		return sess.store
	}
	s.sessions[sessionID] = &session{store: fresh, lastSeen: s.now()}
	return fresh
}

func (s *authService) lookup(sessionID string) *AuthStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	sess.lastSeen = now
	return sess.store
}

// sweep evicts idle sessions, at most once per TTL. Callers hold s.mu.
func (s *authService) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *authService) Login(ctx context.Context, sessionID string, user *models.User) (*AuthStore, error) {
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidUser)
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, user.Role)
	}
	store := s.Open(ctx, sessionID)
	store.Login(ctx, user)
	return store, nil
}

func (s *authService) LoginDemo(ctx context.Context, sessionID string, role models.Role) (*AuthStore, error) {
	user := seed.DemoUser(role)
	if user == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	store := s.Open(ctx, sessionID)
	store.Login(ctx, user)
	return store, nil
}

func (s *authService) UpdateSubscription(ctx context.Context, sessionID string, tier models.SubscriptionTier) (models.AuthState, error) {
	if !tier.Valid() {
		return models.AuthState{}, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}
	store := s.Open(ctx, sessionID)
	store.UpdateSubscription(ctx, tier)
	return store.State(), nil
}

// Logout signs the session out, deletes its persisted state and frees the store.
func (s *authService) Logout(ctx context.Context, sessionID string) models.AuthState {
	store := s.Open(ctx, sessionID)
	store.Logout(ctx)
	store.forget(ctx)
	s.Close(sessionID)
	return store.State()
}

// Close drops the in-process store. Persisted state is kept for the next Open.
func (s *authService) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
