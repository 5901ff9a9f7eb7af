package domain

import (
	"errors"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Kind clasifica los fallos que ve el cliente de la API.
type Kind string

const (
	KindAuth            Kind = "auth"             // credenciales inválidas, token inválido o expirado
	KindValidation      Kind = "validation"       // payload mal formado
	KindAuthorization   Kind = "authorization"    // el rol no tiene permiso (lo decide el servidor)
	KindTransport       Kind = "transport"        // red caída o servidor inalcanzable
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate_limited"
	KindServer          Kind = "server"
	KindInvalidResponse Kind = "invalid_response" // respuesta que no cumple el contrato
)

// Centinelas por tipo: errors.Is(err, domain.ErrAuth) es true para cualquier *Error con Kind == KindAuth.
var (
	ErrAuth            = &Error{Kind: KindAuth}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrAuthorization   = &Error{Kind: KindAuthorization}
	ErrTransport       = &Error{Kind: KindTransport}
	ErrNotFoundKind    = &Error{Kind: KindNotFound}
	ErrConflictKind    = &Error{Kind: KindConflict}
	ErrRateLimited     = &Error{Kind: KindRateLimited}
	ErrServer          = &Error{Kind: KindServer}
	ErrInvalidResponse = &Error{Kind: KindInvalidResponse}
)

// Error es el error tipado que devuelven los clientes de la API.
// Message es el mensaje del servidor cuando lo hay; vacío en fallos locales o de red.
type Error struct {
	Kind    Kind
	Status  int    // código HTTP; 0 si no hubo respuesta
	Code    string // dto.ErrorResponse.Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind para que los centinelas de tipo funcionen con errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError construye un *Error de un tipo con mensaje.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindForStatus traduce un código HTTP de error al Kind correspondiente.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindAuthorization
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindServer
	}
}

// KindOf devuelve el Kind de err; errores no tipados cuentan como fallo de transporte.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}

// UserMessage devuelve el mensaje que dio el servidor o, si no hay, fallback.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
