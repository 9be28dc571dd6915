package service

import (
	"time"

	"loadboard/pkg/events"
	"loadboard/pkg/logger"
	"loadboard/pkg/metrics"
	"loadboard/pkg/scanner"
	"loadboard/pkg/seed"
	"loadboard/storage"
)

type IServiceManager interface {
	Auth() AuthService
	Loads() LoadsService
}

type Deps struct {
	Storage    storage.IStorage
	Sessions   storage.ISessionStorage
	SessionTTL time.Duration
	Scanner    scanner.Scanner
	Publisher  events.Publisher
	Metrics    *metrics.Metrics
}

type service struct {
	authService  AuthService
	loadsService LoadsService
}

func New(deps Deps, log logger.ILogger) IServiceManager {
	if deps.Publisher == nil {
		deps.Publisher = events.NewNoop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Scanner == nil {
		deps.Scanner = scanner.NewMock(0, seed.ScanLoads())
	}
	return &service{
		authService:  NewAuthService(deps.Sessions, deps.SessionTTL, log),
		loadsService: NewLoadsService(deps.Storage, deps.Scanner, deps.Publisher, deps.Metrics, log),
	}
}

func (s *service) Auth() AuthService {
	return s.authService
}

func (s *service) Loads() LoadsService {
	return s.loadsService
}
