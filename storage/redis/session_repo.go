// Package redis persists auth sessions so a returning client gets its last
// known user back, the way the web client kept it in local storage.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"loadboard/config"
	"loadboard/pkg/logger"
	"loadboard/pkg/models"
	"loadboard/storage"
)

const keyPrefix = "onpoint-auth-storage:"

type sessionRepo struct {
	rdb *goredis.Client
	log logger.ILogger
}

// Connect dials Redis and checks it answers.
func Connect(ctx context.Context, cfg config.Config, log logger.ILogger) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect Redis", logger.Error(err))
		_ = rdb.Close()
		return nil, err
	}
	log.Info("Redis connected", logger.String("addr", cfg.RedisAddr()))
	return rdb, nil
}

func NewSessionRepo(rdb *goredis.Client, log logger.ILogger) storage.ISessionStorage {
	return &sessionRepo{rdb: rdb, log: log}
}

func (r *sessionRepo) Save(ctx context.Context, key string, state *models.AuthState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		r.log.Error("failed to save session", logger.String("session", key), logger.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepo) Load(ctx context.Context, key string) (*models.AuthState, error) {
	val, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		r.log.Error("failed to load session", logger.String("session", key), logger.Error(err))
		return nil, err
	}

	var state models.AuthState
	if err := json.Unmarshal(val, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *sessionRepo) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, keyPrefix+key).Err()
}
