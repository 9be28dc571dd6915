package memory

import (
	"context"
	"slices"
	"sync"

	"loadboard/pkg/models"
)

type loadRepo struct {
	mu    sync.RWMutex
	loads []*models.Load
}

func newLoadRepo(seed []models.Load) *loadRepo {
	r := &loadRepo{loads: make([]*models.Load, 0, len(seed))}
	for i := range seed {
		r.loads = append(r.loads, normalize(&seed[i]))
	}
	return r
}

func normalize(l *models.Load) *models.Load {
	c := l.Clone()
	// drop duplicates a caller may have handed in
	var set []string
	for _, id := range c.InterestedDrivers {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	if set == nil {
		set = []string{}
	}
	c.InterestedDrivers = set
	return c
}

func (r *loadRepo) find(id string) *models.Load {
	for _, l := range r.loads {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (r *loadRepo) GetAll(ctx context.Context) ([]*models.Load, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Load, 0, len(r.loads))
	for _, l := range r.loads {
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *loadRepo) GetByID(ctx context.Context, id string) (*models.Load, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.find(id).Clone(), nil
}

func (r *loadRepo) GetByOwner(ctx context.Context, ownerID string) ([]*models.Load, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Load
	for _, l := range r.loads {
		if l.OwnerID == ownerID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (r *loadRepo) GetByInterestedDriver(ctx context.Context, driverID string) ([]*models.Load, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Load
	for _, l := range r.loads {
		if l.HasInterest(driverID) {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (r *loadRepo) Create(ctx context.Context, load *models.Load) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loads = append(r.loads, normalize(load))
	return nil
}

func (r *loadRepo) CreateIfAbsent(ctx context.Context, load *models.Load) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(load.ID) != nil {
		return false, nil
	}
	r.loads = append(r.loads, normalize(load))
	return true, nil
}

func (r *loadRepo) AddInterest(ctx context.Context, loadID, driverID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.find(loadID)
	if l == nil || l.HasInterest(driverID) {
		return false, nil
	}
	l.InterestedDrivers = append(l.InterestedDrivers, driverID)
	return true, nil
}

func (r *loadRepo) RemoveInterest(ctx context.Context, loadID, driverID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.find(loadID)
	if l == nil || !l.HasInterest(driverID) {
		return false, nil
	}
	l.InterestedDrivers = slices.DeleteFunc(l.InterestedDrivers, func(id string) bool {
		return id == driverID
	})
	return true, nil
}
