package entity

import "time"

// Role determina la navegación visible y las operaciones permitidas.
type Role string

// Roles válidos. Guest es solo el valor por defecto sin sesión; no se puede registrar.
const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// ParseRole normaliza un rol; cualquier valor desconocido se trata como guest (mínimo privilegio).
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStaff:
		return RoleStaff
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// Registrable indica si el rol puede pedirse al crear una cuenta (staff o admin).
func (r Role) Registrable() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User representa un usuario autenticable del inventario.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role   // staff o admin
	PasswordHash string // bcrypt hash; solo lo usa el servidor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleOf deriva el rol de la sesión: guest sin usuario, si no el rol del usuario.
// Es la única regla de derivación; no cachear el resultado aparte del usuario.
func RoleOf(u *User) Role {
	if u == nil {
		return RoleGuest
	}
	return u.Role
}

// Registration datos para crear una cuenta.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Role     Role
	Password string
}

// AuthResult resultado de login o registro: token opaco + usuario.
type AuthResult struct {
	Token string
	User  *User
}

// Session copia persistida del token y del último usuario conocido.
// Token vacío y User nil significan "no hay".
type Session struct {
	Token string
	User  *User
}

// HasToken indica si hay un token persistido.
func (s Session) HasToken() bool { return s.Token != "" }
