package sessionstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/infrastructure/sessionstore"
	"github.com/jhoicas/inventario-portal/pkg/config"
)

func staffUser() *entity.User {
	return &entity.User{ID: "u1", Name: "Ana", Email: "a@b.com", Phone: "300", Role: entity.RoleStaff}
}

// ─────────────────────────────────────────────────────────────────────────────
// Contrato común a todos los backends
// ─────────────────────────────────────────────────────────────────────────────

func backends(t *testing.T) map[string]sessionstore.Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := sessionstore.OpenSQLiteStore(context.Background(), filepath.Join(dir, "session.db"))
	require.NoError(t, err)

	stores := map[string]sessionstore.Store{
		"memory": sessionstore.NewMemoryStore(),
		"file":   sessionstore.NewFileStore(filepath.Join(dir, "nested", "session.json")),
		"sqlite": sqlite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_LoadVacioNoFalla(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			sess, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.False(t, sess.HasToken())
			assert.Nil(t, sess.User)
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, "t1", staffUser()))

			sess, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t1", sess.Token)
			require.NotNil(t, sess.User)
			assert.Equal(t, "u1", sess.User.ID)
			assert.Equal(t, entity.RoleStaff, sess.User.Role)
			assert.Equal(t, "300", sess.User.Phone)
		})
	}
}

func TestStore_SaveReemplazaSesionAnterior(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Save(ctx, "t1", staffUser()))
			require.NoError(t, store.Save(ctx, "t2", nil))

			sess, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "t2", sess.Token)
			assert.Nil(t, sess.User, "sin usuario no queda el anterior")
		})
	}
}

func TestStore_ClearIdempotente(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Clear(ctx), "clear sin sesión")
			require.NoError(t, store.Save(ctx, "t1", staffUser()))
			require.NoError(t, store.Clear(ctx))
			require.NoError(t, store.Clear(ctx))

			sess, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, entity.Session{}, sess)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Casos propios de cada backend
// ─────────────────────────────────────────────────────────────────────────────

func TestFileStore_PermisosYUsuarioCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := sessionstore.NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t1", staffUser()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte(`{"token":"t1","user":{"id":"u1","role":"root"}}`), 0o600))
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", sess.Token)
	assert.Nil(t, sess.User, "un rol inválido cuenta como usuario ausente")
}

func TestFileStore_DocumentoIlegibleEsSesionVacia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))

	sess, err := sessionstore.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Session{}, sess)
}

func TestSQLiteStore_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	first, err := sessionstore.OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "t1", staffUser()))
	require.NoError(t, first.Close())

	second, err := sessionstore.OpenSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	sess, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "u1", sess.User.ID)
}

func TestMemoryStore_DevuelveCopias(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	ctx := context.Background()
	u := staffUser()
	require.NoError(t, store.Save(ctx, "t1", u))
	u.Role = entity.RoleAdmin

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, sess.User.Role)
}

func TestOpen_SeleccionaBackend(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := sessionstore.Open(ctx, config.ClientConfig{SessionBackend: config.SessionBackendFile, SessionPath: filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &sessionstore.FileStore{}, s)

	s, err = sessionstore.Open(ctx, config.ClientConfig{SessionBackend: config.SessionBackendSQLite, SessionPath: filepath.Join(dir, "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &sessionstore.SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = sessionstore.Open(ctx, config.ClientConfig{SessionBackend: config.SessionBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &sessionstore.MemoryStore{}, s)

	_, err = sessionstore.Open(ctx, config.ClientConfig{SessionBackend: "cookies"})
	assert.Error(t, err)
}
