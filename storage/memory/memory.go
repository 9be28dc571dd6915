// Package memory is the default storage: process-local, seeded with the demo
// board, nothing survives a restart.
package memory

import (
	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/pkg/seed"
	"loadboard/storage"
)

type Store struct {
	loads   *loadRepo
	drivers *driverRepo
}

// New returns a store seeded with the demo loads and driver roster.
func New(log logger.ILogger) storage.IStorage {
	return NewWith(seed.Loads(), seed.Drivers(), log)
}

// NewWith returns an isolated store holding copies of loads and drivers.
func NewWith(loads []models.Load, drivers []models.Driver, log logger.ILogger) storage.IStorage {
	log.Debug("memory storage ready", logger.Int("loads", len(loads)), logger.Int("drivers", len(drivers)))
	return &Store{
		loads:   newLoadRepo(loads),
		drivers: newDriverRepo(drivers),
	}
}

func (s *Store) Close() {}

func (s *Store) Load() storage.ILoadStorage     { return s.loads }
func (s *Store) Driver() storage.IDriverStorage { return s.drivers }
