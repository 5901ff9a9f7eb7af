package sessionstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"

	_ "modernc.org/sqlite" // driver SQLite para database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

var _ repository.SessionStore = (*SQLiteStore)(nil)

// SQLiteStore guarda las dos claves en la tabla session_kv de una base SQLite local.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore abre (o crea) la base en path y aplica las migraciones embebidas.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("sessionstore: crear directorio: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sessionstore: abrir sqlite: %w", err)
	}
	// Un solo escritor; el cliente no necesita más conexiones.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sessionstore: pragma: %w", err)
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sessionstore: migraciones: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("sessionstore: migraciones: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("sessionstore: aplicar migraciones: %w", err)
	}
	return nil
}

const upsertKV = `
	INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Save escribe ambas claves en una transacción.
func (s *SQLiteStore) Save(ctx context.Context, token string, user *entity.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sessionstore: iniciar tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertKV, keyToken, token); err != nil {
		return fmt.Errorf("sessionstore: guardar token: %w", err)
	}
	if user == nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, keyUser); err != nil {
			return fmt.Errorf("sessionstore: borrar usuario: %w", err)
		}
	} else {
		raw, err := encodeUser(user)
		if err != nil {
			return fmt.Errorf("sessionstore: serializar usuario: %w", err)
		}
		if _, err := tx.ExecContext(ctx, upsertKV, keyUser, string(raw)); err != nil {
			return fmt.Errorf("sessionstore: guardar usuario: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context) (entity.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session_kv WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return entity.Session{}, fmt.Errorf("sessionstore: leer sesión: %w", err)
	}
	defer rows.Close()

	var sess entity.Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return entity.Session{}, fmt.Errorf("sessionstore: leer sesión: %w", err)
		}
		switch key {
		case keyToken:
			sess.Token = value
		case keyUser:
			sess.User = decodeUser([]byte(value))
		}
	}
	if err := rows.Err(); err != nil {
		return entity.Session{}, fmt.Errorf("sessionstore: leer sesión: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
		return fmt.Errorf("sessionstore: borrar sesión: %w", err)
	}
	return nil
}

// Close cierra la base.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
