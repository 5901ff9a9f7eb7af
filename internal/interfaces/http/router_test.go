package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-portal/internal/application/auth"
	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/application/inventory"
	"github.com/jhoicas/inventario-portal/internal/application/usecase"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
	apphttp "github.com/jhoicas/inventario-portal/internal/interfaces/http"
	"github.com/jhoicas/inventario-portal/pkg/config"
	pkgjwt "github.com/jhoicas/inventario-portal/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu       sync.Mutex
	users    map[string]entity.User
	products map[string]entity.Product
	requests map[string]entity.StockRequest
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[string]entity.User{},
		products: map[string]entity.Product{},
		requests: map[string]entity.StockRequest{},
	}
}

type memUserRepo struct{ db *memDB }

func (r memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type memProductRepo struct{ db *memDB }

func (r memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.products[p.ID] = *p
	return nil
}

func (r memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.StockQuantity = stored.StockQuantity
	r.db.products[p.ID] = updated
	return nil
}

func (r memProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	r.db.products[id] = p
	return nil
}

func (r memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset >= len(out) {
		return []*entity.Product{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memProductRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, req := range r.db.requests {
		if req.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.products, id)
	return nil
}

type memRequestRepo struct{ db *memDB }

func (r memRequestRepo) Create(_ context.Context, req *entity.StockRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.requests[req.ID] = *req
	return nil
}

func (r memRequestRepo) GetByID(_ context.Context, id string) (*entity.StockRequest, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	req, ok := r.db.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (r memRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.GetByID(ctx, id)
}

func (r memRequestRepo) Update(_ context.Context, req *entity.StockRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !stored.IsPending() {
		return domain.ErrConflict
	}
	r.db.requests[req.ID] = *req
	return nil
}

func (r memRequestRepo) List(_ context.Context) ([]*entity.StockRequest, error) {
	return r.filter(func(entity.StockRequest) bool { return true }), nil
}

func (r memRequestRepo) ListByRequester(_ context.Context, requesterID string) ([]*entity.StockRequest, error) {
	return r.filter(func(req entity.StockRequest) bool { return req.RequesterID == requesterID }), nil
}

func (r memRequestRepo) filter(keep func(entity.StockRequest) bool) []*entity.StockRequest {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.StockRequest{}
	for _, req := range r.db.requests {
		if keep(req) {
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memRequestRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !stored.IsPending() {
		return domain.ErrConflict
	}
	delete(r.db.requests, id)
	return nil
}

// memTx ejecuta fn con los mismos repos; los repos rechazan escribir solicitudes ya resueltas.
type memTx struct{ db *memDB }

func (t memTx) Run(_ context.Context, fn func(repository.StockRequestRepository, repository.ProductRepository) error) error {
	return fn(memRequestRepo(t), memProductRepo(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID  = "00000000-0000-0000-0000-0000000000aa"
	staffID  = "00000000-0000-0000-0000-0000000000b1"
	staff2ID = "00000000-0000-0000-0000-0000000000b2"
)

func newAPI(t *testing.T, rl config.RateLimitConfig) (*fiber.App, *memDB) {
	t.Helper()
	db := newMemDB()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(memUserRepo{db}, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		ProductUC: usecase.NewProductUseCase(memProductRepo{db}),
		RequestUC: inventory.NewStockRequestUseCase(memTx{db}, memRequestRepo{db}, memProductRepo{db}, nil),
		JWTSecret: testJWTSecret,
		RateLimit: rl,
	})
	return app, db
}

func bearer(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, string(role), testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call hace la petición y devuelve status + cuerpo.
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func createProduct(t *testing.T, app *fiber.App, name string, stock int) dto.ProductResponse {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/products", bearer(t, adminID, entity.RoleAdmin),
		dto.CreateProductRequest{Name: name, StockQuantity: stock})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.ProductResponse](t, raw)
}

func createRequest(t *testing.T, app *fiber.App, userID, path, productID string, qty int) dto.StockRequestResponse {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, path, bearer(t, userID, entity.RoleStaff),
		dto.CreateStockRequestRequest{ProductID: productID, Quantity: qty})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.StockRequestResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroLoginYMe(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})

	status, raw := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "Ana@Example.com", Tel: "555", Role: "staff", Password: "secreto123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	registered := decode[dto.LoginResponse](t, raw)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "staff", registered.User.Role)

	status, raw = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+registered.Token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "ana@example.com", decode[dto.UserResponse](t, raw).Email)

	status, raw = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", decode[dto.ErrorResponse](t, raw).Message)

	status, raw = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, registered.User.ID, decode[dto.LoginResponse](t, raw).User.ID)
}

func TestAuth_RegistroRolInvalido(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})

	for _, role := range []string{"guest", "", "superuser"} {
		status, raw := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
			Name: "X", Email: "x@example.com", Role: role, Password: "secreto123",
		})
		assert.Equal(t, http.StatusBadRequest, status, role)
		assert.Equal(t, "Role must be staff or admin", decode[dto.ErrorResponse](t, raw).Message)
	}
}

func TestAuth_EmailDuplicado(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	in := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Role: "admin", Password: "secreto123"}

	status, _ := call(t, app, http.MethodPost, "/api/auth/register", "", in)
	require.Equal(t, http.StatusCreated, status)

	status, raw := call(t, app, http.MethodPost, "/api/auth/register", "", in)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAuth_MeSinToken(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	status, _ := call(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuth_LoginLimitadoPorIP(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{AuthRPS: 0.001, AuthBurst: 1})
	in := dto.LoginRequest{Email: "nadie@example.com", Password: "secreto123"}

	status, _ := call(t, app, http.MethodPost, "/api/auth/login", "", in)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", in)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", decode[dto.ErrorResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_Permisos(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	staff := bearer(t, staffID, entity.RoleStaff)

	status, _ := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodPost, "/api/products", staff, dto.CreateProductRequest{Name: "Tornillo"})
	assert.Equal(t, http.StatusForbidden, status)

	p := createProduct(t, app, "Tornillo", 10)

	status, raw := call(t, app, http.MethodGet, "/api/products", staff, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]dto.ProductResponse](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	status, _ = call(t, app, http.MethodDelete, "/api/products/"+p.ID, staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProducts_ActualizarYBorrar(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	admin := bearer(t, adminID, entity.RoleAdmin)
	p := createProduct(t, app, "Tuerca", 3)

	stock := 7
	status, raw := call(t, app, http.MethodPut, "/api/products/"+p.ID, admin, dto.UpdateProductRequest{StockQuantity: &stock})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, 7, updated.StockQuantity)
	assert.Equal(t, "Tuerca", updated.Name)

	negative := -1
	status, _ = call(t, app, http.MethodPut, "/api/products/"+p.ID, admin, dto.UpdateProductRequest{StockQuantity: &negative})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/api/products/"+p.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = call(t, app, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)
}

func TestProducts_BorrarConSolicitudesEsConflicto(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	p := createProduct(t, app, "Arandela", 5)
	createRequest(t, app, staffID, "/api/requests/stockin", p.ID, 1)

	status, _ := call(t, app, http.MethodDelete, "/api/products/"+p.ID, bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusConflict, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Requests
// ──────────────────────────────────────────────────────────────────────────────

func TestRequests_EndpointFijaElTipo(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	p := createProduct(t, app, "Clavo", 10)

	in := createRequest(t, app, staffID, "/api/requests/stockin", p.ID, 2)
	out := createRequest(t, app, staffID, "/api/requests/stockout", p.ID, 2)

	assert.Equal(t, string(entity.RequestTypeStockIn), in.Type)
	assert.Equal(t, string(entity.RequestTypeStockOut), out.Type)
	assert.Equal(t, string(entity.RequestStatusPending), in.Status)
	assert.Equal(t, staffID, in.RequesterID)
}

func TestRequests_SoloStaffCrea(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	p := createProduct(t, app, "Clavo", 10)

	status, _ := call(t, app, http.MethodPost, "/api/requests/stockin", bearer(t, adminID, entity.RoleAdmin),
		dto.CreateStockRequestRequest{ProductID: p.ID, Quantity: 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodPost, "/api/requests/stockin", bearer(t, staffID, entity.RoleStaff),
		dto.CreateStockRequestRequest{ProductID: p.ID, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPost, "/api/requests/stockin", bearer(t, staffID, entity.RoleStaff),
		dto.CreateStockRequestRequest{ProductID: "no-existe", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRequests_AprobarMueveStock(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	admin := bearer(t, adminID, entity.RoleAdmin)
	p := createProduct(t, app, "Clavo", 10)
	req := createRequest(t, app, staffID, "/api/requests/stockout", p.ID, 4)

	status, _ := call(t, app, http.MethodPatch, "/api/requests/"+req.ID+"/status", bearer(t, staffID, entity.RoleStaff),
		dto.UpdateStatusRequest{Status: "approved"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := call(t, app, http.MethodPatch, "/api/requests/"+req.ID+"/status", admin, dto.UpdateStatusRequest{Status: "approved"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "approved", decode[dto.StockRequestResponse](t, raw).Status)

	_, raw = call(t, app, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	assert.Equal(t, 6, decode[dto.ProductResponse](t, raw).StockQuantity)

	status, raw = call(t, app, http.MethodPatch, "/api/requests/"+req.ID+"/status", admin, dto.UpdateStatusRequest{Status: "rejected"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, raw).Code)
}

func TestRequests_EstadoInvalido(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	p := createProduct(t, app, "Clavo", 10)
	req := createRequest(t, app, staffID, "/api/requests/stockin", p.ID, 1)

	status, _ := call(t, app, http.MethodPatch, "/api/requests/"+req.ID+"/status", bearer(t, adminID, entity.RoleAdmin),
		dto.UpdateStatusRequest{Status: "pending"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRequests_StockInsuficienteDejaPendiente(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	admin := bearer(t, adminID, entity.RoleAdmin)
	p := createProduct(t, app, "Clavo", 10)
	req := createRequest(t, app, staffID, "/api/requests/stockout", p.ID, 20)

	status, raw := call(t, app, http.MethodPatch, "/api/requests/"+req.ID+"/status", admin, dto.UpdateStatusRequest{Status: "approved"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	_, raw = call(t, app, http.MethodGet, "/api/requests", admin, nil)
	all := decode[[]dto.StockRequestResponse](t, raw)
	require.Len(t, all, 1)
	assert.Equal(t, "pending", all[0].Status)

	_, raw = call(t, app, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	assert.Equal(t, 10, decode[dto.ProductResponse](t, raw).StockQuantity)
}

func TestRequests_EditarYBorrar(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	owner := bearer(t, staffID, entity.RoleStaff)
	other := bearer(t, staff2ID, entity.RoleStaff)
	p := createProduct(t, app, "Clavo", 10)
	req := createRequest(t, app, staffID, "/api/requests/stockin", p.ID, 1)

	qty := 3
	status, _ := call(t, app, http.MethodPut, "/api/requests/"+req.ID, other, dto.UpdateStockRequestRequest{Quantity: &qty})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := call(t, app, http.MethodPut, "/api/requests/"+req.ID, owner, dto.UpdateStockRequestRequest{Quantity: &qty})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, 3, decode[dto.StockRequestResponse](t, raw).Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/requests/"+req.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodDelete, "/api/requests/"+req.ID, bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = call(t, app, http.MethodGet, "/api/requests/my", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]dto.StockRequestResponse](t, raw))
}

func TestRequests_ListadoGeneralSoloAdmin(t *testing.T) {
	app, _ := newAPI(t, config.RateLimitConfig{})
	p := createProduct(t, app, "Clavo", 10)
	createRequest(t, app, staffID, "/api/requests/stockin", p.ID, 1)
	createRequest(t, app, staff2ID, "/api/requests/stockin", p.ID, 2)

	status, _ := call(t, app, http.MethodGet, "/api/requests", bearer(t, staffID, entity.RoleStaff), nil)
	assert.Equal(t, http.StatusForbidden, status)

	_, raw := call(t, app, http.MethodGet, "/api/requests/my", bearer(t, staffID, entity.RoleStaff), nil)
	mine := decode[[]dto.StockRequestResponse](t, raw)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].Quantity)

	_, raw = call(t, app, http.MethodGet, "/api/requests", bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Len(t, decode[[]dto.StockRequestResponse](t, raw), 2)
}
