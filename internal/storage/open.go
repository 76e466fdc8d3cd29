package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/config"
)

// OpenStore opens the account store selected by cfg.StoreBackend.
func OpenStore(cfg config.AppConfig) (account.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite, "":
		s, err := OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreJSON:
		s, err := OpenJSON(cfg.JSONPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreRedis:
		rc := DefaultRedisConfig()
		if cfg.RedisURL != "" {
			rc.URL = cfg.RedisURL
		}
		s, err := OpenRedis(rc)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (want %s, %s, %s or %s)",
			cfg.StoreBackend, config.StoreSQLite, config.StoreJSON, config.StoreRedis, config.StoreMemory)
	}
}
