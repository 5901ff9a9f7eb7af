package apiclient

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// AuthClient llamadas de autenticación: login, registro y usuario actual.
// No hay logout remoto: cerrar sesión es borrar la sesión local.
type AuthClient struct {
	c *Client
}

// NewAuthClient construye el cliente de auth.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login POST /auth/login.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*entity.AuthResult, error) {
	var out dto.LoginResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Register POST /auth/register.
func (a *AuthClient) Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error) {
	var out dto.LoginResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/register", dto.NewRegisterRequest(reg), &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// CurrentUser GET /auth/me con el token vigente.
func (a *AuthClient) CurrentUser(ctx context.Context) (*entity.User, error) {
	var out dto.UserResponse
	if err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}
