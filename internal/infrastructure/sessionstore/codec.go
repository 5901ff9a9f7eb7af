package sessionstore

import (
	"encoding/json"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// Claves lógicas de la sesión persistida.
const (
	keyToken = "token"
	keyUser  = "user"
)

// encodeUser serializa el usuario con la forma del API (dto.UserResponse).
func encodeUser(u *entity.User) ([]byte, error) {
	return json.Marshal(dto.NewUserResponse(u))
}

// decodeUser devuelve nil si el valor está vacío o corrupto: un usuario ilegible cuenta como ausente.
func decodeUser(b []byte) *entity.User {
	if len(b) == 0 {
		return nil
	}
	var r dto.UserResponse
	if err := json.Unmarshal(b, &r); err != nil {
		return nil
	}
	u, err := r.ToEntity()
	if err != nil {
		return nil
	}
	return u
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
