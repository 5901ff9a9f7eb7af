package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/infrastructure/apiclient"
)

// recorder guarda cada petición recibida por el servidor de prueba.
type recorder struct {
	mu    sync.Mutex
	calls []call
}

type call struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func (r *recorder) record(req *http.Request) {
	raw, _ := io.ReadAll(req.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{Method: req.Method, Path: req.URL.Path, Auth: req.Header.Get("Authorization"), Body: body})
}

func (r *recorder) all() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

// newServer levanta un servidor que registra la petición y responde con status y cuerpo fijos.
func newServer(t *testing.T, status int, body string) (*apiclient.Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/api/", 5*time.Second, nil), rec
}

const userJSON = `{"id":"u1","name":"Ana","email":"a@b.com","tel":"300","role":"staff"}`

const requestJSON = `{"id":"r1","productId":"p1","type":"Stock In","quantity":5,"status":"pending","requesterId":"u1"}`

// ─────────────────────────────────────────────────────────────────────────────
// Transporte y errores
// ─────────────────────────────────────────────────────────────────────────────

func TestClient_AdjuntaBearerDelTokenSource(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, userJSON)
	c.SetTokenSource(apiclient.TokenSourceFunc(func() string { return "t1" }))

	_, err := apiclient.NewAuthClient(c).CurrentUser(context.Background())
	require.NoError(t, err)

	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/auth/me", calls[0].Path)
	assert.Equal(t, "Bearer t1", calls[0].Auth)
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"token":"t1","user":`+userJSON+`}`)

	_, err := apiclient.NewAuthClient(c).Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, rec.all()[0].Auth)
}

func TestClient_ErrorDelServidorTipado(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, domain.ErrAuth},
		{http.StatusForbidden, domain.ErrAuthorization},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusNotFound, domain.ErrNotFoundKind},
		{http.StatusConflict, domain.ErrConflictKind},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusInternalServerError, domain.ErrServer},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c, _ := newServer(t, tc.status, `{"code":"X","message":"mensaje del servidor"}`)

			_, err := apiclient.NewAuthClient(c).Login(context.Background(), "a@b.com", "pw")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var e *domain.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tc.status, e.Status)
			assert.Equal(t, "X", e.Code)
			assert.Equal(t, "mensaje del servidor", domain.UserMessage(err, "fallback"))
		})
	}
}

func TestClient_ErrorSinCuerpoUsaFallback(t *testing.T) {
	c, _ := newServer(t, http.StatusUnauthorized, "")

	_, err := apiclient.NewAuthClient(c).Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, "Invalid email or password", domain.UserMessage(err, "Invalid email or password"))
}

func TestClient_ServidorInalcanzableEsTransporte(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := apiclient.New(url, time.Second, nil)
	_, err := apiclient.NewAuthClient(c).CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
}

func TestClient_RespuestaMalFormada(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"token":"","user":`+userJSON+`}`)
	_, err := apiclient.NewAuthClient(c).Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidResponse, "sin token")

	c, _ = newServer(t, http.StatusOK, `not json`)
	_, err = apiclient.NewAuthClient(c).CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)

	c, _ = newServer(t, http.StatusOK, `{"id":"u1","role":"guest"}`)
	_, err = apiclient.NewAuthClient(c).CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidResponse, "guest no es un rol de usuario")
}

// ─────────────────────────────────────────────────────────────────────────────
// Auth
// ─────────────────────────────────────────────────────────────────────────────

func TestAuthClient_RegisterEnviaCuerpoDelContrato(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"token":"t1","user":`+userJSON+`}`)

	res, err := apiclient.NewAuthClient(c).Register(context.Background(), entity.Registration{
		Name: "Ana", Email: "a@b.com", Phone: "300", Role: entity.RoleStaff, Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, entity.RoleStaff, res.User.Role)

	got := rec.all()[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/auth/register", got.Path)
	assert.Equal(t, map[string]any{
		"name": "Ana", "email": "a@b.com", "tel": "300", "role": "staff", "password": "secreto123",
	}, got.Body)
}
