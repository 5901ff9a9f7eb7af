package nav

import (
	"sync"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// SessionView lo que el presentador lee de la sesión (implementado por session.Manager).
type SessionView interface {
	Role() entity.Role
	User() *entity.User
	Loading() bool
	Logout()
}

// View estado renderizable de la barra de navegación.
type View struct {
	Viewport       Viewport
	Links          []Link
	UserLabel      string // nombre del usuario; vacío para guest
	ShowMenuToggle bool   // solo en compacto
	MenuOpen       bool
	Loading        bool // rol aún desconocido: no se muestran enlaces
}

// Presenter mantiene el viewport y el menú compacto; el rol siempre se lee de la sesión.
type Presenter struct {
	session SessionView

	mu       sync.Mutex
	viewport Viewport
	menuOpen bool
}

// NewPresenter construye el presentador para un ancho inicial.
func NewPresenter(session SessionView, width int) *Presenter {
	return &Presenter{session: session, viewport: ViewportForWidth(width)}
}

// View calcula la vista actual.
func (p *Presenter) View() View {
	p.mu.Lock()
	vp, open := p.viewport, p.menuOpen
	p.mu.Unlock()

	v := View{
		Viewport:       vp,
		ShowMenuToggle: vp == Compact,
		MenuOpen:       open && vp == Compact,
	}
	if p.session.Loading() {
		v.Loading = true
		v.Links = []Link{}
		return v
	}
	v.Links = Derive(p.session.Role(), vp, v.MenuOpen)
	if u := p.session.User(); u != nil {
		v.UserLabel = u.Name
	}
	return v
}

// ToggleMenu abre o cierra el menú compacto; en escritorio no hace nada.
func (p *Presenter) ToggleMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.viewport == Compact {
		p.menuOpen = !p.menuOpen
	}
}

// Resize recalcula el viewport; al pasar a escritorio el menú se cierra.
func (p *Presenter) Resize(width int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport = ViewportForWidth(width)
	if p.viewport == Desktop {
		p.menuOpen = false
	}
}

// Select cierra el menú y devuelve la ruta destino.
func (p *Presenter) Select(l Link) string {
	p.closeMenu()
	return l.Path
}

// Logout cierra la sesión, el menú y devuelve la ruta de login.
func (p *Presenter) Logout() string {
	p.session.Logout()
	p.closeMenu()
	return PathLogin
}

func (p *Presenter) closeMenu() {
	p.mu.Lock()
	p.menuOpen = false
	p.mu.Unlock()
}
