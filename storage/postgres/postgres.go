package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"loadboard/config"
	"loadboard/pkg/logger"
	"loadboard/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Store, error) {
	url := cfg.PostgresURL()

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		log.Error("Postgres ping failed", logger.Error(err))
		pool.Close()
		return nil, err
	}

	if err := runMigrations(url, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected")

	return &Store{
		pool: pool,
		log:  log,
	}, nil
}

func runMigrations(url string, log logger.ILogger) error {
	cwd, _ := os.Getwd()
	mPath := findMigrations(cwd)

	m, err := migrate.New("file://"+mPath, url)
	if err != nil {
		log.Error("migration init error or no migrations found", logger.Error(err))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	return nil
}

// findMigrations looks for a migrations directory in dir and then its parents,
// so the binary and package tests both find the repo's migrations.
func findMigrations(dir string) string {
	for d := dir; ; {
		if info, err := os.Stat(filepath.Join(d, "migrations")); err == nil && info.IsDir() {
			return filepath.Join(d, "migrations")
		}
		parent := filepath.Dir(d)
		if parent == d {
			return filepath.Join(dir, "migrations")
		}
		d = parent
	}
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Load() storage.ILoadStorage     { return NewLoadRepo(s.pool, s.log) }
func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.pool, s.log) }
