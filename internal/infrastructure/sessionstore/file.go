package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
)

var _ repository.SessionStore = (*FileStore)(nil)

// FileStore guarda token y usuario en un único documento JSON.
// La escritura va a un archivo temporal que luego se renombra, así un Load nunca ve media sesión.
type FileStore struct {
	path string
}

type fileDocument struct {
	Token string          `json:"token,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// NewFileStore construye el store sobre path; el archivo se crea en el primer Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path ruta del documento de sesión.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Save(_ context.Context, token string, user *entity.User) error {
	doc := fileDocument{Token: token}
	if user != nil {
		raw, err := encodeUser(user)
		if err != nil {
			return fmt.Errorf("sessionstore: serializar usuario: %w", err)
		}
		doc.User = raw
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("sessionstore: serializar sesión: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("sessionstore: archivo temporal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sessionstore: escribir sesión: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("sessionstore: cerrar sesión: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("sessionstore: permisos: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("sessionstore: reemplazar sesión: %w", err)
	}
	return nil
}

// Load trata un archivo inexistente o ilegible como sesión vacía.
func (s *FileStore) Load(_ context.Context) (entity.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.Session{}, nil
		}
		return entity.Session{}, fmt.Errorf("sessionstore: leer sesión: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.Session{}, nil
	}
	return entity.Session{Token: doc.Token, User: decodeUser(doc.User)}, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sessionstore: borrar sesión: %w", err)
	}
	return nil
}

// Close no libera nada; existe para cumplir Store.
func (s *FileStore) Close() error { return nil }
