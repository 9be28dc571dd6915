package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"loadboard/pkg/events"
	"loadboard/pkg/logger"
	"loadboard/pkg/metrics"
	"loadboard/pkg/models"
	"loadboard/pkg/scanner"
	"loadboard/pkg/seed"
	"loadboard/storage"
)

type FeedSort string

const (
	SortNone     FeedSort = ""
	SortPay      FeedSort = "pay"
	SortDistance FeedSort = "distance"
)

// LoadsService is the board: postings, driver interest and AI scans.
// Unknown load ids are never an error for interest operations; they are no-ops.
type LoadsService interface {
	AddLoad(ctx context.Context, load *models.Load) error
	PostLoad(ctx context.Context, owner *models.User, in models.LoadInput) (*models.Load, error)
	ExpressInterest(ctx context.Context, loadID, driverID string) error
	RemoveInterest(ctx context.Context, loadID, driverID string) error
	GetInterestedDrivers(ctx context.Context, loadID string) ([]*models.Driver, error)
	VisibleInterestedDrivers(ctx context.Context, loadID string, tier models.SubscriptionTier) ([]*models.Driver, error)
	MyInterestedLoads(ctx context.Context, driverID string) ([]string, error)
	ScanAILoads(ctx context.Context) ([]string, error)
	AIScannedLoads() []string
	Loads(ctx context.Context) ([]*models.Load, error)
	Load(ctx context.Context, id string) (*models.Load, error)
	OwnerLoads(ctx context.Context, ownerID string) ([]*models.Load, error)
	Drivers(ctx context.Context) ([]*models.Driver, error)
	Feed(ctx context.Context, sort FeedSort) ([]*models.Load, error)
}

type loadsService struct {
	loads   storage.ILoadStorage
	drivers storage.IDriverStorage
	scanner scanner.Scanner
	pub     events.Publisher
	metrics *metrics.Metrics
	log     logger.ILogger
	now     func() time.Time

	mu        sync.RWMutex
	aiScanned []string
}

func NewLoadsService(stg storage.IStorage, sc scanner.Scanner, pub events.Publisher, m *metrics.Metrics, log logger.ILogger) LoadsService {
	return &loadsService{
		loads:   stg.Load(),
		drivers: stg.Driver(),
		scanner: sc,
		pub:     pub,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

func (s *loadsService) AddLoad(ctx context.Context, load *models.Load) error {
	if err := s.loads.Create(ctx, load); err != nil {
		return err
	}
	s.metrics.LoadsPosted.Inc()
	s.publish(ctx, events.Event{Type: events.LoadPosted, LoadID: load.ID, OwnerID: load.OwnerID})
	s.log.Info("load added", logger.String("load_id", load.ID), logger.String("owner_id", load.OwnerID))
	return nil
}

func (s *loadsService) PostLoad(ctx context.Context, owner *models.User, in models.LoadInput) (*models.Load, error) {
	if owner == nil {
		return nil, ErrNotAuthenticated
	}
	if owner.Role != models.RoleOwner {
		return nil, fmt.Errorf("%w: only owners post loads", ErrForbidden)
	}
	if err := validateLoadInput(in); err != nil {
		return nil, err
	}

	load := &models.Load{
		ID:                "load-" + uuid.NewString(),
		Title:             strings.TrimSpace(in.Title),
		Origin:            strings.TrimSpace(in.Origin),
		Destination:       strings.TrimSpace(in.Destination),
		Distance:          in.Distance,
		Weight:            in.Weight,
		Payment:           in.Payment,
		PickupDate:        in.PickupDate,
		DeliveryDate:      in.PickupDate,
		CargoType:         strings.TrimSpace(in.CargoType),
		Status:            models.LoadActive,
		OwnerID:           owner.ID,
		OwnerName:         owner.Name,
		InterestedDrivers: []string{},
		CreatedAt:         s.now(),
	}
	if err := s.AddLoad(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

func validateLoadInput(in models.LoadInput) error {
	required := map[string]string{
		"title":       in.Title,
		"origin":      in.Origin,
		"destination": in.Destination,
		"cargo_type":  in.CargoType,
	}
	for _, field := range []string{"title", "origin", "destination", "cargo_type"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidLoad, field)
		}
	}
	if in.PickupDate.IsZero() {
		return fmt.Errorf("%w: pickup_date is required", ErrInvalidLoad)
	}
	if in.Distance <= 0 || in.Weight <= 0 || in.Payment <= 0 {
		return fmt.Errorf("%w: distance, weight and payment must be positive", ErrInvalidLoad)
	}
	return nil
}

func (s *loadsService) ExpressInterest(ctx context.Context, loadID, driverID string) error {
	added, err := s.loads.AddInterest(ctx, loadID, driverID)
	if err != nil {
		return err
	}
	if !added {
		s.log.Debug("interest unchanged", logger.String("load_id", loadID), logger.String("driver_id", driverID))
		return nil
	}
	s.metrics.Interest.WithLabelValues("expressed").Inc()
	s.publish(ctx, events.Event{Type: events.InterestExpressed, LoadID: loadID, DriverID: driverID})
	return nil
}

func (s *loadsService) RemoveInterest(ctx context.Context, loadID, driverID string) error {
	removed, err := s.loads.RemoveInterest(ctx, loadID, driverID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	s.metrics.Interest.WithLabelValues("removed").Inc()
	s.publish(ctx, events.Event{Type: events.InterestRemoved, LoadID: loadID, DriverID: driverID})
	return nil
}

func (s *loadsService) GetInterestedDrivers(ctx context.Context, loadID string) ([]*models.Driver, error) {
	load, err := s.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return []*models.Driver{}, nil
	}
	return s.drivers.GetByIDs(ctx, load.InterestedDrivers)
}

func (s *loadsService) VisibleInterestedDrivers(ctx context.Context, loadID string, tier models.SubscriptionTier) ([]*models.Driver, error) {
	drivers, err := s.GetInterestedDrivers(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if limit := seed.Plan(tier).DriverVisibility; limit > 0 && len(drivers) > limit {
		drivers = drivers[:limit]
	}
	return drivers, nil
}

// MyInterestedLoads is derived from the per-load sets, so it cannot hold a load twice.
func (s *loadsService) MyInterestedLoads(ctx context.Context, driverID string) ([]string, error) {
	loads, err := s.loads.GetByInterestedDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(loads))
	for _, l := range loads {
		ids = append(ids, l.ID)
	}
	return ids, nil
}

// ScanAILoads merges whatever the scanner finds, skipping ids already on the board,
// and returns the ids it added. If ctx ends during the scan nothing changes. If the
// merge fails partway, the loads already merged stay on the board and in the feed.
func (s *loadsService) ScanAILoads(ctx context.Context) ([]string, error) {
	started := s.now()
	found, err := s.scanner.Scan(ctx)
	if err != nil {
		s.log.Warning("ai scan aborted", logger.Error(err))
		return nil, err
	}

	// Each insert is recorded as it lands: a load merged before a failure
	// must still reach the feed, since later scans will skip it as present.
	added := []string{}
	for i := range found {
		inserted, err := s.loads.CreateIfAbsent(ctx, &found[i])
		if err != nil {
			s.log.Error("ai scan merge failed",
				logger.String("load_id", found[i].ID),
				logger.Strings("added", added),
				logger.Error(err),
			)
			if len(added) > 0 {
				s.metrics.ScannedLoads.Add(float64(len(added)))
				s.publish(ctx, events.Event{Type: events.LoadsScanned, LoadIDs: added})
			}
			return added, err
		}
		if inserted {
			added = append(added, found[i].ID)
			s.markScanned(found[i].ID)
		}
	}

	s.metrics.Scans.Inc()
	s.metrics.ScannedLoads.Add(float64(len(added)))
	s.publish(ctx, events.Event{Type: events.LoadsScanned, LoadIDs: added})
	s.log.Info("ai scan finished",
		logger.Int("found", len(found)),
		logger.Int("added", len(added)),
		logger.Duration("took", s.now().Sub(started)),
	)
	return added, nil
}

func (s *loadsService) markScanned(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.aiScanned, id) {
		s.aiScanned = append(s.aiScanned, id)
	}
}

func (s *loadsService) AIScannedLoads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.aiScanned...)
}

func (s *loadsService) Loads(ctx context.Context) ([]*models.Load, error) {
	return s.loads.GetAll(ctx)
}

func (s *loadsService) Load(ctx context.Context, id string) (*models.Load, error) {
	load, err := s.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadNotFound, id)
	}
	return load, nil
}

func (s *loadsService) OwnerLoads(ctx context.Context, ownerID string) ([]*models.Load, error) {
	return s.loads.GetByOwner(ctx, ownerID)
}

func (s *loadsService) Drivers(ctx context.Context) ([]*models.Driver, error) {
	return s.drivers.GetAll(ctx)
}

// Feed shows the whole board until a scan has run, then only what scans revealed.
func (s *loadsService) Feed(ctx context.Context, sort FeedSort) ([]*models.Load, error) {
	loads, err := s.loads.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	scanned := s.AIScannedLoads()
	if len(scanned) > 0 {
		loads = slices.DeleteFunc(loads, func(l *models.Load) bool {
			return !slices.Contains(scanned, l.ID)
		})
	}

	switch sort {
	case SortPay:
		slices.SortStableFunc(loads, func(a, b *models.Load) int {
			return compareFloat(b.Payment, a.Payment)
		})
	case SortDistance:
		slices.SortStableFunc(loads, func(a, b *models.Load) int {
			return compareFloat(a.Distance, b.Distance)
		})
	}
	return loads, nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (s *loadsService) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now()
	if err := s.pub.Publish(ctx, e); err != nil {
		s.log.Warning("failed to publish event", logger.String("type", e.Type), logger.Error(err))
	}
}
