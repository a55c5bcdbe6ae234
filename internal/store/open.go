package store

import (
	"context"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/config"
)

// Open returns the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		return NewMemory(), nil
	case config.DriverRedis:
		return NewRedis(ctx, cfg.Store.Redis.Addr, cfg.Store.Redis.DB, cfg.Store.Redis.Key)
	case config.DriverBadger:
		return NewBadger(cfg.Store.Badger.Dir)
	}
	return nil, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Store.Driver)
}
