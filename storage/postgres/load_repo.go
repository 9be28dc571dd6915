package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/storage"
)

const selectLoads = `
	SELECT l.id, l.title, l.origin, l.destination, l.distance, l.weight, l.payment,
		l.pickup_date, l.delivery_date, l.cargo_type, l.status, l.owner_id, l.owner_name,
		COALESCE(array_agg(i.driver_id ORDER BY i.position) FILTER (WHERE i.driver_id IS NOT NULL), '{}'),
		l.created_at
	FROM loads l
	LEFT JOIN load_interests i ON i.load_id = l.id`

type loadRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewLoadRepo(db *pgxpool.Pool, log logger.ILogger) storage.ILoadStorage {
	return &loadRepo{db: db, log: log}
}

func scanLoad(row pgx.Row) (*models.Load, error) {
	var l models.Load
	err := row.Scan(
		&l.ID, &l.Title, &l.Origin, &l.Destination, &l.Distance, &l.Weight, &l.Payment,
		&l.PickupDate, &l.DeliveryDate, &l.CargoType, &l.Status, &l.OwnerID, &l.OwnerName,
		&l.InterestedDrivers, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if l.InterestedDrivers == nil {
		l.InterestedDrivers = []string{}
	}
	return &l, nil
}

func (r *loadRepo) query(ctx context.Context, sql string, args ...any) ([]*models.Load, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("failed to query loads", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var loads []*models.Load
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

func (r *loadRepo) GetAll(ctx context.Context) ([]*models.Load, error) {
	return r.query(ctx, selectLoads+` GROUP BY l.id ORDER BY l.seq`)
}

func (r *loadRepo) GetByID(ctx context.Context, id string) (*models.Load, error) {
	l, err := scanLoad(r.db.QueryRow(ctx, selectLoads+` WHERE l.id = $1 GROUP BY l.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get load", logger.String("load_id", id), logger.Error(err))
		return nil, err
	}
	return l, nil
}

func (r *loadRepo) GetByOwner(ctx context.Context, ownerID string) ([]*models.Load, error) {
	return r.query(ctx, selectLoads+` WHERE l.owner_id = $1 GROUP BY l.id ORDER BY l.seq`, ownerID)
}

func (r *loadRepo) GetByInterestedDriver(ctx context.Context, driverID string) ([]*models.Load, error) {
	return r.query(ctx, selectLoads+`
		WHERE EXISTS (SELECT 1 FROM load_interests x WHERE x.load_id = l.id AND x.driver_id = $1)
		GROUP BY l.id ORDER BY l.seq`, driverID)
}

func (r *loadRepo) Create(ctx context.Context, load *models.Load) error {
	_, err := r.insert(ctx, load, false)
	return err
}

func (r *loadRepo) CreateIfAbsent(ctx context.Context, load *models.Load) (bool, error) {
	return r.insert(ctx, load, true)
}

func (r *loadRepo) insert(ctx context.Context, load *models.Load, skipExisting bool) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO loads (id, title, origin, destination, distance, weight, payment,
			pickup_date, delivery_date, cargo_type, status, owner_id, owner_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if skipExisting {
		query += ` ON CONFLICT (id) DO NOTHING`
	}

	tag, err := tx.Exec(ctx, query,
		load.ID, load.Title, load.Origin, load.Destination, load.Distance, load.Weight, load.Payment,
		load.PickupDate, load.DeliveryDate, load.CargoType, load.Status, load.OwnerID, load.OwnerName, load.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to insert load", logger.String("load_id", load.ID), logger.Error(err))
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	for _, driverID := range load.InterestedDrivers {
		_, err := tx.Exec(ctx,
			`INSERT INTO load_interests (load_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			load.ID, driverID)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *loadRepo) AddInterest(ctx context.Context, loadID, driverID string) (bool, error) {
	query := `
		INSERT INTO load_interests (load_id, driver_id)
		SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM loads WHERE id = $1)
		ON CONFLICT DO NOTHING`
	tag, err := r.db.Exec(ctx, query, loadID, driverID)
	if err != nil {
		r.log.Error("failed to add interest", logger.String("load_id", loadID), logger.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *loadRepo) RemoveInterest(ctx context.Context, loadID, driverID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM load_interests WHERE load_id = $1 AND driver_id = $2`, loadID, driverID)
	if err != nil {
		r.log.Error("failed to remove interest", logger.String("load_id", loadID), logger.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
