package session

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// Mensajes mostrados cuando el servidor no envía uno propio.
const (
	MsgLoginFailed        = "Invalid email or password"
	MsgRegistrationFailed = "Registration failed"
	MsgInvalidRole        = "Role must be staff or admin"
)

// State estado del ciclo de vida de la sesión.
type State int

const (
	StateUninitialized State = iota
	StateValidating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Manager es la única autoridad sobre el usuario, el rol y el token en memoria,
// y el único que escribe en el SessionStore.
//
// El mutex solo protege el acceso a los campos: las mutaciones no se serializan entre sí
// y si dos compiten gana la última en resolver. Quien dispara login/register/logout
// debe evitar tener dos en vuelo.
type Manager struct {
	auth   Authenticator
	store  repository.SessionStore
	notify Notifier
	log    *logger.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *entity.User
}

// NewManager construye el Manager en estado Uninitialized (Loading() == true hasta Init).
func NewManager(auth Authenticator, store repository.SessionStore, notify Notifier, log *logger.Logger) *Manager {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{auth: auth, store: store, notify: notify, log: log, state: StateUninitialized}
}

// Init valida la sesión persistida. Con token llama a CurrentUser: si responde, la sesión queda
// autenticada; si falla por cualquier motivo se borra la sesión persistida y queda anónima.
// Los fallos aquí no se notifican. Solo tiene efecto la primera vez.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	sess, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session: no se pudo leer la sesión persistida")
		sess = entity.Session{}
	}

	if !sess.HasToken() {
		// Sin token se borra cualquier resto: un usuario suelto o un documento ilegible.
		m.clearStore(ctx)
		m.setAnonymous()
		return
	}

	m.mu.Lock()
	m.state = StateValidating
	m.token = sess.Token
	m.mu.Unlock()

	user, err := m.auth.CurrentUser(ctx)
	if err == nil && user == nil {
		err = domain.NewError(domain.KindInvalidResponse, "")
	}
	if err != nil {
		m.log.Debug().Err(err).Str("kind", string(domain.KindOf(err))).Msg("session: token persistido rechazado")
		m.clearStore(ctx)
		m.setAnonymous()
		return
	}

	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
	m.log.Debug().Str("user_id", user.ID).Msg("session: sesión restaurada")
}

// Login autentica, persiste {token, user} y devuelve true. Si falla no cambia el estado,
// notifica el mensaje del servidor (o MsgLoginFailed) y devuelve false.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	res, err := m.auth.Login(ctx, email, password)
	if err == nil {
		err = checkResult(res)
	}
	if err != nil {
		m.log.Info().Err(err).Str("kind", string(domain.KindOf(err))).Msg("session: login fallido")
		m.notify.Error(domain.UserMessage(err, MsgLoginFailed))
		return false
	}
	m.authenticate(ctx, res)
	return true
}

// Register crea la cuenta y deja la sesión autenticada, con el mismo contrato que Login.
// Un rol distinto de staff/admin falla localmente sin llamar al servidor.
func (m *Manager) Register(ctx context.Context, reg entity.Registration) bool {
	if !reg.Role.Registrable() {
		m.notify.Error(MsgInvalidRole)
		return false
	}
	res, err := m.auth.Register(ctx, reg)
	if err == nil {
		err = checkResult(res)
	}
	if err != nil {
		m.log.Info().Err(err).Str("kind", string(domain.KindOf(err))).Msg("session: registro fallido")
		m.notify.Error(domain.UserMessage(err, MsgRegistrationFailed))
		return false
	}
	m.authenticate(ctx, res)
	return true
}

// checkResult rechaza un resultado sin token o sin usuario como respuesta inválida.
func checkResult(res *entity.AuthResult) error {
	if res == nil || res.Token == "" || res.User == nil {
		return domain.NewError(domain.KindInvalidResponse, "")
	}
	return nil
}

// authenticate persiste y fija la sesión. Un fallo al persistir no deshace el login en memoria.
func (m *Manager) authenticate(ctx context.Context, res *entity.AuthResult) {
	if err := m.store.Save(ctx, res.Token, res.User); err != nil {
		m.log.Warn().Err(err).Msg("session: no se pudo persistir la sesión")
	}
	m.mu.Lock()
	m.token = res.Token
	m.user = res.User
	m.state = StateAuthenticated
	m.mu.Unlock()
	m.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("session: autenticado")
}

// Logout borra la sesión persistida y la de memoria. No hace llamadas de red y nunca falla.
func (m *Manager) Logout() {
	m.clearStore(context.Background())
	m.setAnonymous()
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("session: no se pudo borrar la sesión persistida")
	}
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

// User devuelve una copia del usuario actual; nil sin sesión.
func (m *Manager) User() *entity.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Role se deriva del usuario en cada lectura.
func (m *Manager) Role() entity.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return entity.RoleOf(m.user)
}

// Loading es true hasta que Init resuelve; mientras tanto el rol no es fiable.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateUninitialized || m.state == StateValidating
}

// State estado actual.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token token vigente (incluido el que se está validando en Init). Implementa apiclient.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}
