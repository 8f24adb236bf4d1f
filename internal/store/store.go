package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyricbook/internal/shared"
)

var (
	ErrNotFound          = fmt.Errorf("key not found")
	ErrUnsupportedDriver = fmt.Errorf("unsupported store driver")
	ErrClosed            = fmt.Errorf("store closed")
)

// Store is a durable string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error) // Get returns [ErrNotFound] for a key that was never written
	Set(ctx context.Context, key, value string) error    // Set overwrites key with value
	Delete(ctx context.Context, key string) error        // Delete removes key; deleting an absent key is not an error
	Keys(ctx context.Context) ([]string, error)          // Keys lists every key owned by the store, sorted
	Clear(ctx context.Context) error                     // Clear removes every key owned by the store
	Close() error
}

// Open builds the [Store] described by cfg.
func Open(ctx context.Context, cfg *shared.Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	logger = shared.WithLogger(logger, "store", cfg.Store.Driver)

	switch cfg.Store.Driver {
	case "", "sqlite":
		db, err := shared.OpenDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Debug("opened sqlite store", "path", cfg.Database.Path)
		return NewSQLiteStore(db), nil
	case "redis":
		s, err := DialRedis(ctx, cfg.Store.RedisURL, cfg.Store.Namespace)
		if err != nil {
			return nil, err
		}
		logger.Debug("connected to redis store", "namespace", cfg.Store.Namespace)
		return s, nil
	case "memory":
		logger.Warn("using in-memory store; nothing will be persisted")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Store.Driver)
	}
}
