package repository

import (
	"context"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// SessionStore persiste el token y el último usuario conocido entre ejecuciones del cliente.
// Solo lo escribe session.Manager. No valida formato ni expiración del token.
type SessionStore interface {
	// Save guarda ambas claves; un Load posterior nunca ve solo una de ellas.
	Save(ctx context.Context, token string, user *entity.User) error
	// Load devuelve la sesión persistida; la ausencia se representa con valores vacíos, no con error.
	Load(ctx context.Context) (entity.Session, error)
	// Clear borra ambas claves; es idempotente.
	Clear(ctx context.Context) error
}
