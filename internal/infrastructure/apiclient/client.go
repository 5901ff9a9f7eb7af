package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// maxBodyBytes tope de lectura de cualquier respuesta del API.
const maxBodyBytes = 1 << 20

// TokenSource entrega el token vigente; vacío = sin sesión.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapta una función a TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// Client transporte HTTP compartido por los clientes de auth, productos y solicitudes.
// Adjunta "Authorization: Bearer <token>" cuando el TokenSource tiene sesión y traduce
// las respuestas de error a *domain.Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

// New construye el cliente. baseURL incluye el prefijo del API (p. ej. http://localhost:8080/api).
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient construye el cliente sobre un *http.Client existente (tests).
func NewWithHTTPClient(baseURL string, hc *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		log:        log,
	}
}

// SetTokenSource fija de dónde sale el token; normalmente el session.Manager.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do ejecuta la petición. in se serializa como JSON si no es nil; out recibe el cuerpo si no es nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &domain.Error{Kind: domain.KindValidation, Message: "no se pudo serializar la petición", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.Error{Kind: domain.KindTransport, Err: fmt.Errorf("crear HTTP request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("api: llamada fallida")
		return &domain.Error{Kind: domain.KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.Error{Kind: domain.KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api: respuesta")

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &domain.Error{Kind: domain.KindInvalidResponse, Status: resp.StatusCode, Message: "respuesta vacía"}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.Error{Kind: domain.KindInvalidResponse, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// errorFromResponse usa el cuerpo {code,message} si el servidor lo envió.
func errorFromResponse(status int, raw []byte) error {
	e := &domain.Error{Kind: domain.KindForStatus(status), Status: status}
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Code = body.Code
		e.Message = body.Message
	}
	return e
}
