package sessionstore

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/inventario-portal/internal/domain/repository"
	"github.com/jhoicas/inventario-portal/pkg/config"
)

// Store es un SessionStore que además libera recursos al cerrar.
type Store interface {
	repository.SessionStore
	io.Closer
}

// Open construye el backend indicado por SESSION_BACKEND.
func Open(ctx context.Context, cfg config.ClientConfig) (Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendFile, "":
		return NewFileStore(cfg.SessionPath), nil
	case config.SessionBackendSQLite:
		return OpenSQLiteStore(ctx, cfg.SessionPath)
	case config.SessionBackendRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case config.SessionBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("sessionstore: backend desconocido %q", cfg.SessionBackend)
	}
}
