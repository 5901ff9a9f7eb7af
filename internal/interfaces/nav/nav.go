// Package nav deriva la navegación visible a partir del rol de la sesión y del tamaño de pantalla.
package nav

import "github.com/jhoicas/inventario-portal/internal/domain/entity"

// DesktopMinWidth ancho mínimo (px o columnas) considerado escritorio.
const DesktopMinWidth = 768

// Viewport clase de pantalla.
type Viewport int

const (
	Desktop Viewport = iota
	Compact
)

func (v Viewport) String() string {
	if v == Desktop {
		return "desktop"
	}
	return "compact"
}

// ViewportForWidth >= DesktopMinWidth es escritorio; por debajo, compacto.
func ViewportForWidth(width int) Viewport {
	if width >= DesktopMinWidth {
		return Desktop
	}
	return Compact
}

// Link destino de navegación.
type Link struct {
	Label string
	Path  string
}

// Rutas de la aplicación.
const (
	PathHome        = "/"
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathProducts    = "/products"
	PathMyRequests  = "/my-requests"
	PathAllRequests = "/all-requests"
)

var (
	linkLogin    = Link{Label: "Login", Path: PathLogin}
	linkRegister = Link{Label: "Register", Path: PathRegister}
)

// Derive devuelve, en orden, los destinos visibles para role en el viewport dado.
// Un rol desconocido se trata como guest. Login y Register de guest se ven siempre;
// los enlaces de staff y admin en pantalla compacta solo con el menú abierto.
func Derive(role entity.Role, vp Viewport, menuOpen bool) []Link {
	switch entity.ParseRole(string(role)) {
	case entity.RoleStaff:
		if vp == Compact && !menuOpen {
			return []Link{}
		}
		return []Link{
			{Label: "Products", Path: PathProducts},
			{Label: "My Requests", Path: PathMyRequests},
		}
	case entity.RoleAdmin:
		if vp == Desktop {
			return []Link{
				{Label: "Products", Path: PathProducts},
				{Label: "Requests", Path: PathAllRequests},
			}
		}
		if !menuOpen {
			return []Link{}
		}
		return []Link{
			{Label: "Product Management", Path: PathProducts},
			{Label: "All Requests", Path: PathAllRequests},
		}
	default:
		return []Link{linkLogin, linkRegister}
	}
}
