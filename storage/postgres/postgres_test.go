package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadboard/config"
	"loadboard/pkg/logger"
	"loadboard/pkg/seed"
)

// newTestStore needs a reachable database; set LOADBOARD_TEST_POSTGRES=1 and the POSTGRES_* variables.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("LOADBOARD_TEST_POSTGRES") == "" {
		t.Skip("LOADBOARD_TEST_POSTGRES is not set")
	}
	ctx := context.Background()
	s, err := New(ctx, config.Load(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Reset(ctx, seed.Loads(), seed.Drivers()))
	return s
}

func TestFindMigrations(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	info, err := os.Stat(findMigrations(cwd))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_SeededBoard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.Seeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	loads, err := s.Load().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, loads, 3)
	assert.Equal(t, []string{"drv-001", "drv-003"}, loads[0].InterestedDrivers)
	assert.Equal(t, []string{}, loads[2].InterestedDrivers)

	drivers, err := s.Driver().GetByIDs(ctx, []string{"drv-003", "drv-001", "drv-404"})
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	assert.Equal(t, "drv-001", drivers[0].ID)
}

func TestLoadRepo_Interest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Load()

	added, err := repo.AddInterest(ctx, "load-002", "drv-001")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddInterest(ctx, "load-002", "drv-001")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = repo.AddInterest(ctx, "load-404", "drv-001")
	require.NoError(t, err)
	assert.False(t, added)

	l, err := repo.GetByID(ctx, "load-002")
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-002", "drv-001"}, l.InterestedDrivers)

	removed, err := repo.RemoveInterest(ctx, "load-002", "drv-002")
	require.NoError(t, err)
	assert.True(t, removed)

	mine, err := repo.GetByInterestedDriver(ctx, "drv-001")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "load-001", mine[0].ID)
	assert.Equal(t, "load-002", mine[1].ID)

	missing, err := repo.GetByID(ctx, "load-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoadRepo_ConcurrentInterest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Load()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddInterest(ctx, "load-003", "drv-002")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	l, err := repo.GetByID(ctx, "load-003")
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-002"}, l.InterestedDrivers)
}

func TestLoadRepo_CreateIfAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Load()

	scanned := seed.ScanLoads()
	var inserted []string
	for i := range scanned {
		ok, err := repo.CreateIfAbsent(ctx, &scanned[i])
		require.NoError(t, err)
		if ok {
			inserted = append(inserted, scanned[i].ID)
		}
	}
	assert.Equal(t, []string{"load-004", "load-005", "load-006"}, inserted)

	l, err := repo.GetByID(ctx, "load-006")
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-003"}, l.InterestedDrivers)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestLoadRepo_TimesKeepTheirInstant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Load()

	tbilisi := time.FixedZone("GET", 4*60*60)
	l := seed.ScanLoads()[1]
	l.PickupDate = time.Date(2024, 12, 27, 8, 30, 0, 0, tbilisi)
	l.DeliveryDate = l.PickupDate.Add(6 * time.Hour)
	l.CreatedAt = time.Date(2024, 12, 20, 23, 15, 0, 0, tbilisi)
	require.NoError(t, repo.Create(ctx, &l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, l.PickupDate.Equal(got.PickupDate), "pickup %s != %s", l.PickupDate, got.PickupDate)
	assert.True(t, l.DeliveryDate.Equal(got.DeliveryDate))
	assert.True(t, l.CreatedAt.Equal(got.CreatedAt))
}
