// Package scanner is the boundary to the load discovery service. The only
// implementation today is Mock, which waits and then returns a fixed list.
package scanner

import (
	"context"
	"time"

	"loadboard/pkg/models"
)

type Scanner interface {
	Scan(ctx context.Context) ([]models.Load, error)
}

type Mock struct {
	delay time.Duration
	loads []models.Load
}

func NewMock(delay time.Duration, loads []models.Load) *Mock {
	return &Mock{delay: delay, loads: loads}
}

// Scan blocks for the configured delay. It fails only when ctx ends first.
func (m *Mock) Scan(ctx context.Context) ([]models.Load, error) {
	if m.delay > 0 {
		t := time.NewTimer(m.delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Load, 0, len(m.loads))
	for i := range m.loads {
		out = append(out, *m.loads[i].Clone())
	}
	return out, nil
}
