package storage

import (
	"context"
	"fmt"
	"log"

	"complaintportal/backend/internal/config"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects the backend selected by cfg.StorageDriver. The returned close
// func releases its connections.
func Open(ctx context.Context, cfg *config.Config) (Backend, func() error, error) {
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect Redis: %w", err)
		}
	}
	closeRedis := func() error {
		if rdb != nil {
			return rdb.Close()
		}
		return nil
	}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewKVStore(NewMemoryBlob(), cfg.StorageKey), closeRedis, nil

	case config.DriverFile:
		log.Printf("INFO: Storing complaints under %s", cfg.StorageDir)
		return NewKVStore(FileBlob{Dir: cfg.StorageDir}, cfg.StorageKey), closeRedis, nil

	case config.DriverRedis:
		return NewKVStore(RedisBlob{Client: rdb}, cfg.StorageKey), closeRedis, nil

	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			closeRedis()
			return nil, nil, fmt.Errorf("failed to connect PostgreSQL: %w", err)
		}
		if err := Migrate(db); err != nil {
			closeRedis()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		svc := NewStorageService(db, rdb)
		svc.CacheTTL = cfg.CacheTTL
		closeAll := func() error {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
			return closeRedis()
		}
		return svc, closeAll, nil
	}

	closeRedis()
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
