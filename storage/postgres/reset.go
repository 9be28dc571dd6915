package postgres

import (
	"context"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
)

// Reset wipes the board and loads the given roster and postings.
func (s *Store) Reset(ctx context.Context, loads []models.Load, drivers []models.Driver) error {
	if _, err := s.pool.Exec(ctx, "TRUNCATE TABLE load_interests, loads, drivers RESTART IDENTITY CASCADE"); err != nil {
		s.log.Error("failed to truncate tables", logger.Error(err))
		return err
	}

	for _, d := range drivers {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO drivers (id, name, rating, completed_loads, truck_type, location, distance, phone, verified, response_time, ai_match_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			d.ID, d.Name, d.Rating, d.CompletedLoads, d.TruckType, d.Location, d.Distance, d.Phone, d.Verified, d.ResponseTime, d.AIMatchScore,
		)
		if err != nil {
			s.log.Error("failed to seed driver", logger.String("driver_id", d.ID), logger.Error(err))
			return err
		}
	}

	repo := s.Load()
	for i := range loads {
		if err := repo.Create(ctx, &loads[i]); err != nil {
			return err
		}
	}

	s.log.Info("board reset", logger.Int("loads", len(loads)), logger.Int("drivers", len(drivers)))
	return nil
}

// Seeded reports whether the driver roster has been loaded.
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM drivers").Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
