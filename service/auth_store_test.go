package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/pkg/seed"
	"loadboard/storage"
	"loadboard/storage/memory"
)

func newStore(t *testing.T) *AuthStore {
	t.Helper()
	return NewAuthStore("test", memory.NewSessionRepo(), time.Hour, logger.NewNop())
}

func TestAuthStore_LoginLogout(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.Equal(t, models.AuthState{}, s.State())

	s.Login(ctx, seed.DemoUser(models.RoleDriver))
	st := s.State()
	require.NotNil(t, st.User)
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, seed.DemoDriverID, st.User.ID)

	s.Logout(ctx)
	assert.Nil(t, s.State().User)
	assert.False(t, s.State().IsAuthenticated)
}

func TestAuthStore_LogoutWhenNotLoggedIn(t *testing.T) {
	s := newStore(t)
	s.Logout(context.Background())
	assert.Equal(t, models.AuthState{}, s.State())
}

func TestAuthStore_LoginReplacesUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	s.Login(ctx, seed.DemoUser(models.RoleDriver))
	s.Login(ctx, seed.DemoUser(models.RoleOwner))

	assert.Equal(t, seed.DemoOwnerID, s.User().ID)
}

func TestAuthStore_LoginAcceptsAnyUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	s.Login(ctx, &models.User{Name: "nobody"})
	assert.True(t, s.State().IsAuthenticated)
	assert.Equal(t, models.TierFree, s.User().Subscription)

	s.Login(ctx, &models.User{Name: "rich", IsPremium: true})
	assert.Equal(t, models.TierPremium, s.User().Subscription)

	s.Login(ctx, nil)
	assert.Equal(t, "rich", s.User().Name)
}

func TestAuthStore_UpdatesWithoutUserAreNoops(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	s.UpdateSubscription(ctx, models.TierPro)
	s.UpdateTruckTypes(ctx, []string{"Box Truck"})
	s.UpgradeToPremium(ctx)

	assert.Equal(t, models.AuthState{}, s.State())
}

func TestAuthStore_UpdateSubscription(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.Login(ctx, seed.DemoUser(models.RoleDriver))

	s.UpdateSubscription(ctx, models.TierPro)
	u := s.User()
	assert.Equal(t, models.TierPro, u.Subscription)
	assert.True(t, u.IsPremium)
	assert.Equal(t, "Dachi Ghambashidze", u.Name)

	s.UpdateSubscription(ctx, models.TierFree)
	assert.False(t, s.User().IsPremium)

	s.UpgradeToPremium(ctx)
	assert.Equal(t, models.TierPremium, s.User().Subscription)
}

func TestAuthStore_UpdateTruckTypesCopiesInput(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.Login(ctx, seed.DemoUser(models.RoleDriver))

	types := []string{"Flatbed Truck", "Box Truck"}
	s.UpdateTruckTypes(ctx, types)
	types[0] = "changed"

	assert.Equal(t, []string{"Flatbed Truck", "Box Truck"}, s.User().TruckTypes)
}

func TestAuthStore_StateIsASnapshot(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	s.Login(ctx, seed.DemoUser(models.RoleDriver))

	st := s.State()
	st.User.Name = "tampered"

	assert.Equal(t, "Dachi Ghambashidze", s.User().Name)
}

func TestAuthStore_SubscribersSeeEveryChange(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var seen []bool
	unsubscribe := s.Subscribe(func(st models.AuthState) {
		seen = append(seen, st.IsAuthenticated)
	})

	s.Login(ctx, seed.DemoUser(models.RoleOwner))
	s.Logout(ctx)
	unsubscribe()
	s.Login(ctx, seed.DemoUser(models.RoleOwner))

	assert.Equal(t, []bool{true, false}, seen)
}

func TestAuthStore_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepo()

	first := NewAuthStore("browser-1", repo, time.Hour, logger.NewNop())
	first.Login(ctx, seed.DemoUser(models.RoleDriver))
	first.UpdateTruckTypes(ctx, []string{"Tanker Truck"})

	second := NewAuthStore("browser-1", repo, time.Hour, logger.NewNop())
	second.Restore(ctx)
	require.NotNil(t, second.User())
	assert.True(t, second.State().IsAuthenticated)
	assert.Equal(t, []string{"Tanker Truck"}, second.User().TruckTypes)

	other := NewAuthStore("browser-2", repo, time.Hour, logger.NewNop())
	other.Restore(ctx)
	assert.Nil(t, other.User())
}

type failingSessions struct{}

func (failingSessions) Save(context.Context, string, *models.AuthState, time.Duration) error {
	return errors.New("disk full")
}

func (failingSessions) Load(context.Context, string) (*models.AuthState, error) {
	return nil, errors.New("unreachable")
}

func (failingSessions) Delete(context.Context, string) error { return nil }

func TestAuthStore_PersistenceFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	s := NewAuthStore("x", failingSessions{}, time.Hour, logger.NewNop())

	s.Restore(ctx)
	s.Login(ctx, seed.DemoUser(models.RoleDriver))

	assert.True(t, s.State().IsAuthenticated)
}

func TestAuthService_Sessions(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewSessionRepo(), time.Hour, logger.NewNop())

	a, err := svc.LoginDemo(ctx, "a", models.RoleDriver)
	require.NoError(t, err)
	b := svc.Open(ctx, "b")

	assert.Same(t, a, svc.Open(ctx, "a"))
	assert.True(t, a.State().IsAuthenticated)
	assert.False(t, b.State().IsAuthenticated)

	svc.Close("a")
	reopened := svc.Open(ctx, "a")
	assert.NotSame(t, a, reopened)
	assert.Equal(t, seed.DemoDriverID, reopened.User().ID)
}

func TestAuthService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(memory.NewSessionRepo(), time.Hour, logger.NewNop())

	_, err := svc.LoginDemo(ctx, "a", "admin")
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.Login(ctx, "a", &models.User{Role: models.RoleOwner})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = svc.Login(ctx, "a", &models.User{ID: "x", Role: "admin"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.UpdateSubscription(ctx, "a", "gold")
	assert.ErrorIs(t, err, ErrInvalidTier)

	store, err := svc.Login(ctx, "a", &models.User{ID: "own-009", Role: models.RoleOwner})
	require.NoError(t, err)
	st, err := svc.UpdateSubscription(ctx, "a", models.TierPro)
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, st.User.Subscription)
	assert.Equal(t, models.TierPro, store.User().Subscription)
}

// gatedSessions blocks the first save of an authenticated state until released.
type gatedSessions struct {
	storage.ISessionStorage

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedSessions() *gatedSessions {
	return &gatedSessions{
		ISessionStorage: memory.NewSessionRepo(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
}

func (g *gatedSessions) Save(ctx context.Context, key string, st *models.AuthState, ttl time.Duration) error {
	if st.IsAuthenticated {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.ISessionStorage.Save(ctx, key, st, ttl)
}

func TestAuthStore_SlowLoginSaveDoesNotUndoLogout(t *testing.T) {
	ctx := context.Background()
	repo := newGatedSessions()
	s := NewAuthStore("slow", repo, time.Hour, logger.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Login(ctx, seed.DemoUser(models.RoleDriver))
	}()
	<-repo.entered

	go func() {
		defer wg.Done()
		s.Logout(ctx)
	}()
	require.Eventually(t, func() bool { return !s.State().IsAuthenticated }, time.Second, time.Millisecond)

	close(repo.release)
	wg.Wait()

	persisted, err := repo.Load(ctx, "slow")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.False(t, persisted.IsAuthenticated)
	assert.Nil(t, persisted.User)

	restored := NewAuthStore("slow", repo, time.Hour, logger.NewNop())
	restored.Restore(ctx)
	assert.False(t, restored.State().IsAuthenticated)
}

func TestAuthStore_StaleWriteIsSkipped(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepo()
	s := NewAuthStore("stale", repo, time.Hour, logger.NewNop())

	s.Logout(ctx)
	s.persist(ctx, 0, models.AuthState{User: seed.DemoUser(models.RoleOwner), IsAuthenticated: true})

	persisted, err := repo.Load(ctx, "stale")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.False(t, persisted.IsAuthenticated)
}

func TestAuthService_LogoutFreesSession(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepo()
	svc := NewAuthService(repo, time.Hour, logger.NewNop()).(*authService)

	for i := range 1000 {
		id := fmt.Sprintf("s-%d", i)
		_, err := svc.LoginDemo(ctx, id, models.RoleDriver)
		require.NoError(t, err)
		st := svc.Logout(ctx, id)
		require.False(t, st.IsAuthenticated)
	}
	assert.Empty(t, svc.sessions)

	persisted, err := repo.Load(ctx, "s-0")
	require.NoError(t, err)
	assert.Nil(t, persisted)

	assert.False(t, svc.Open(ctx, "s-0").State().IsAuthenticated)
}

func TestAuthService_EvictsIdleSessions(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepo()
	svc := NewAuthService(repo, time.Hour, logger.NewNop()).(*authService)
	now := time.Date(2024, 12, 20, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	idle, err := svc.LoginDemo(ctx, "idle", models.RoleOwner)
	require.NoError(t, err)
	_, err = svc.LoginDemo(ctx, "busy", models.RoleDriver)
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	svc.Open(ctx, "busy")
	now = now.Add(30 * time.Minute)
	svc.Open(ctx, "busy")

	require.Len(t, svc.sessions, 1)
	assert.Contains(t, svc.sessions, "busy")

	reopened := svc.Open(ctx, "idle")
	assert.NotSame(t, idle, reopened)
	require.NotNil(t, reopened.User())
	assert.Equal(t, seed.DemoOwnerID, reopened.User().ID)
}

// slowSessions blocks Load for one key until released.
type slowSessions struct {
	storage.ISessionStorage
	slowKey string
	release chan struct{}
}

func (s *slowSessions) Load(ctx context.Context, key string) (*models.AuthState, error) {
	if key == s.slowKey {
		<-s.release
	}
	return s.ISessionStorage.Load(ctx, key)
}

func TestAuthService_SlowRestoreDoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	repo := &slowSessions{ISessionStorage: memory.NewSessionRepo(), slowKey: "slow", release: make(chan struct{})}
	svc := NewAuthService(repo, time.Hour, logger.NewNop())

	done := make(chan *AuthStore)
	go func() { done <- svc.Open(ctx, "slow") }()

	fast := make(chan *AuthStore)
	go func() { fast <- svc.Open(ctx, "fast") }()
	select {
	case store := <-fast:
		assert.Equal(t, "fast", store.Key())
	case <-time.After(time.Second):
		t.Fatal("open of another session waited on a slow restore")
	}

	close(repo.release)
	slow := <-done
	assert.Same(t, slow, svc.Open(ctx, "slow"))
}
