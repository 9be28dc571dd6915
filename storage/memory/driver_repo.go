package memory

import (
	"context"
	"slices"

	"loadboard/pkg/models"
)

// driverRepo is read-only after construction, so it needs no lock.
type driverRepo struct {
	drivers []models.Driver
}

func newDriverRepo(drivers []models.Driver) *driverRepo {
	return &driverRepo{drivers: slices.Clone(drivers)}
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	out := make([]*models.Driver, 0, len(r.drivers))
	for i := range r.drivers {
		d := r.drivers[i]
		out = append(out, &d)
	}
	return out, nil
}

// GetByIDs returns roster entries whose id is in ids, in roster order.
func (r *driverRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Driver, error) {
	out := []*models.Driver{}
	for i := range r.drivers {
		if slices.Contains(ids, r.drivers[i].ID) {
			d := r.drivers[i]
			out = append(out, &d)
		}
	}
	return out, nil
}
