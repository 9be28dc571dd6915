package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const selectDrivers = `SELECT id, name, rating, completed_loads, truck_type, location, distance, phone, verified, response_time, ai_match_score FROM drivers`

func (r *driverRepo) query(ctx context.Context, sql string, args ...any) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("failed to query drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		var d models.Driver
		err := rows.Scan(
			&d.ID, &d.Name, &d.Rating, &d.CompletedLoads, &d.TruckType, &d.Location, &d.Distance, &d.Phone, &d.Verified, &d.ResponseTime, &d.AIMatchScore,
		)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, &d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	return r.query(ctx, selectDrivers+` ORDER BY seq`)
}

func (r *driverRepo) GetByIDs(ctx context.Context, ids []string) ([]*models.Driver, error) {
	if len(ids) == 0 {
		return []*models.Driver{}, nil
	}
	return r.query(ctx, selectDrivers+` WHERE id = ANY($1) ORDER BY seq`, ids)
}
