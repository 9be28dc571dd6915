package service

import (
	"context"
	"sync"
	"time"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/storage"
)

// AuthStore holds who is logged in for one session. Every operation is total:
// nothing is validated and persistence failures are only logged. Subscribers
// are called synchronously, after the change, with the new state.
type AuthStore struct {
	key string
	stg storage.ISessionStorage
	ttl time.Duration
	log logger.ILogger

	mu      sync.Mutex
	state   models.AuthState
	version uint64
	subs    map[int]func(models.AuthState)
	nextSub int

	// persistMu orders writes to stg; persisted is the last version written or deleted.
	persistMu sync.Mutex
	persisted uint64
}

func NewAuthStore(key string, stg storage.ISessionStorage, ttl time.Duration, log logger.ILogger) *AuthStore {
	return &AuthStore{
		key:  key,
		stg:  stg,
		ttl:  ttl,
		log:  log.With(logger.String("session", key)),
		subs: make(map[int]func(models.AuthState)),
	}
}

func (s *AuthStore) Key() string { return s.key }

// State returns a snapshot; mutating it does not touch the store.
func (s *AuthStore) State() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

func (s *AuthStore) User() *models.User {
	return s.State().User
}

// Restore loads the persisted state, if any, replacing the in-memory one.
func (s *AuthStore) Restore(ctx context.Context) {
	if s.stg == nil {
		return
	}
	persisted, err := s.stg.Load(ctx, s.key)
	if err != nil {
		s.log.Warning("failed to restore session", logger.Error(err))
		return
	}
	if persisted == nil {
		return
	}
	s.mu.Lock()
	s.state = snapshot(*persisted)
	s.mu.Unlock()
}

// Login accepts any user as-is. A missing tier is derived from IsPremium. A nil user is ignored.
func (s *AuthStore) Login(ctx context.Context, user *models.User) {
	if user == nil {
		return
	}
	u := user.Clone()
	if u.Subscription == "" {
		u.Subscription = models.TierFree
		if u.IsPremium {
			u.Subscription = models.TierPremium
		}
	}
	s.set(ctx, func(st *models.AuthState) {
		st.User = u
		st.IsAuthenticated = true
	})
	s.log.Info("logged in", logger.String("user_id", u.ID), logger.String("role", string(u.Role)))
}

func (s *AuthStore) Logout(ctx context.Context) {
	s.set(ctx, func(st *models.AuthState) {
		st.User = nil
		st.IsAuthenticated = false
	})
	s.log.Info("logged out")
}

func (s *AuthStore) UpdateSubscription(ctx context.Context, tier models.SubscriptionTier) {
	s.set(ctx, func(st *models.AuthState) {
		if st.User == nil {
			return
		}
		st.User.Subscription = tier
		st.User.IsPremium = tier != models.TierFree
	})
}

func (s *AuthStore) UpgradeToPremium(ctx context.Context) {
	s.UpdateSubscription(ctx, models.TierPremium)
}

func (s *AuthStore) UpdateTruckTypes(ctx context.Context, truckTypes []string) {
	types := append([]string{}, truckTypes...)
	s.set(ctx, func(st *models.AuthState) {
		if st.User == nil {
			return
		}
		st.User.TruckTypes = types
	})
}

// Subscribe registers fn for every later change. Call the returned func to stop.
func (s *AuthStore) Subscribe(fn func(models.AuthState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *AuthStore) set(ctx context.Context, mutate func(*models.AuthState)) {
	s.mu.Lock()
	// copy-on-write so snapshots handed out earlier stay untouched
	next := snapshot(s.state)
	mutate(&next)
	s.state = next
	s.version++
	version := s.version
	subs := make([]func(models.AuthState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot(next))
	}

	s.persist(ctx, version, next)
}

// persist writes st unless a newer version already reached storage.
func (s *AuthStore) persist(ctx context.Context, version uint64, st models.AuthState) {
	if s.stg == nil {
		return
	}
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if version <= s.persisted {
		s.log.Debug("skipping stale session write", logger.Int64("version", int64(version)))
		return
	}
	persisted := snapshot(st)
	if err := s.stg.Save(ctx, s.key, &persisted, s.ttl); err != nil {
		s.log.Warning("failed to persist session", logger.Error(err))
	}
	s.persisted = version
}

// forget drops the persisted state. Writes of versions committed before the call are skipped.
func (s *AuthStore) forget(ctx context.Context) {
	if s.stg == nil {
		return
	}
	s.mu.Lock()
	version := s.version
	s.mu.Unlock()

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.stg.Delete(ctx, s.key); err != nil {
		s.log.Warning("failed to delete session", logger.Error(err))
	}
	if version > s.persisted {
		s.persisted = version
	}
}

func snapshot(st models.AuthState) models.AuthState {
	return models.AuthState{User: st.User.Clone(), IsAuthenticated: st.IsAuthenticated}
}
