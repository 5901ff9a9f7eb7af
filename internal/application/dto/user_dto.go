package dto

import (
	"time"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// RegisterRequest entrada para POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Tel      string `json:"tel"`
	Role     string `json:"role" validate:"required,oneof=staff admin"`
	Password string `json:"password" validate:"required,min=8"`
}

// NewRegisterRequest arma el cuerpo de registro desde el dominio.
func NewRegisterRequest(r entity.Registration) RegisterRequest {
	return RegisterRequest{
		Name:     r.Name,
		Email:    r.Email,
		Tel:      r.Phone,
		Role:     string(r.Role),
		Password: r.Password,
	}
}

// LoginRequest entrada para POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Tel       string    `json:"tel"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// NewUserResponse serializa un usuario del dominio.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Tel:       u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToEntity valida la forma recibida y la convierte a dominio.
// Un usuario sin id o con un rol distinto de staff/admin no es un usuario válido.
func (r UserResponse) ToEntity() (*entity.User, error) {
	if r.ID == "" {
		return nil, invalidResponse("usuario sin id")
	}
	role := entity.ParseRole(r.Role)
	if !role.Registrable() {
		return nil, invalidResponse("rol de usuario inválido: " + r.Role)
	}
	return &entity.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Tel,
		Role:      role,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// LoginResponse salida de login y registro: token JWT + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToEntity valida que haya token y usuario.
func (r LoginResponse) ToEntity() (*entity.AuthResult, error) {
	if r.Token == "" {
		return nil, invalidResponse("respuesta sin token")
	}
	user, err := r.User.ToEntity()
	if err != nil {
		return nil, err
	}
	return &entity.AuthResult{Token: r.Token, User: user}, nil
}
