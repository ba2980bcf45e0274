// Package factory builds the storage backend selected by configuration.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/icalorie/icalorie-server/internal/config"
	"github.com/icalorie/icalorie-server/internal/kv"
	"github.com/icalorie/icalorie-server/internal/kv/postgres"
	"github.com/icalorie/icalorie-server/internal/kv/sqlite"
)

// BuildKV constructs the KV backend named by cfg.DBDriver.
func BuildKV(cfg *config.Config, log zerolog.Logger) (kv.KV, error) {
	switch cfg.DBDriver {
	case "sqlite":
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		log.Info().Msg("using postgres storage")
		return postgres.New(cfg.PostgresDSN)
	case "memory":
		log.Warn().Msg("using in-memory storage; data will not survive restarts")
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}
