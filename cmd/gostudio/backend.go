package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	goStudio "github.com/MrEthical07/goStudio"
	"github.com/MrEthical07/goStudio/httpapi"
	"github.com/MrEthical07/goStudio/internal/config"
	"github.com/MrEthical07/goStudio/internal/sqlstore"
	"github.com/MrEthical07/goStudio/internal/stores"
	"github.com/MrEthical07/goStudio/session"
)

type backend struct {
	stores goStudio.Stores
	ping   func(ctx context.Context) error
	close  func() error
	// db is set for the sqlite driver only.
	db *bun.DB
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		users := stores.NewUsers(rdb, cfg.RedisPrefix)
		sessions := session.NewStore(rdb, cfg.RedisPrefix)
		latency, err := users.Ping(ctx)
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("store opened", "driver", cfg.StoreDriver, "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix, "latency", latency)
		return &backend{
			stores: goStudio.Stores{
				Users:    users,
				Sessions: sessions,
				Teachers: stores.NewTeachers(rdb, cfg.RedisPrefix),
			},
			ping:  httpapi.PingHealth(users, sessions),
			close: rdb.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlstore.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", "driver", cfg.StoreDriver, "dsn", cfg.SQLiteDSN)
		users := sqlstore.NewUsers(db)
		return &backend{
			stores: goStudio.Stores{
				Users:    users,
				Sessions: sqlstore.NewSessions(db),
				Teachers: sqlstore.NewTeachers(db),
			},
			ping:  httpapi.PingHealth(users),
			close: db.Close,
			db:    db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// migrate applies pending SQL migrations; Redis needs none.
func (b *backend) migrate(ctx context.Context, logger *slog.Logger) error {
	if b.db == nil {
		return nil
	}
	group, err := sqlstore.Migrate(ctx, b.db)
	if err != nil {
		return err
	}
	if group == nil {
		logger.Info("schema up to date")
		return nil
	}
	logger.Info("migrations applied", "group", group.ID, "count", len(group.Migrations))
	return nil
}
