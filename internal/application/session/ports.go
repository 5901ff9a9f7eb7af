package session

import (
	"context"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// Authenticator llamadas de auth que necesita el Manager (implementado por apiclient.AuthClient).
// Un resultado nil o sin usuario sin error se trata como respuesta inválida.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
	Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error)
	CurrentUser(ctx context.Context) (*entity.User, error)
}

// Notifier muestra al usuario los fallos de login y registro.
type Notifier interface {
	Error(msg string)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Error(msg string) { f(msg) }
