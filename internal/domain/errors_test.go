package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-portal/internal/domain"
)

func TestError_IsComparaPorKind(t *testing.T) {
	err := fmt.Errorf("login: %w", &domain.Error{Kind: domain.KindAuth, Status: 401, Message: "credenciales inválidas"})

	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestKindOf_ErrorNoTipadoEsTransporte(t *testing.T) {
	assert.Equal(t, domain.KindTransport, domain.KindOf(errors.New("connection refused")))
}

func TestKindForStatus(t *testing.T) {
	cases := map[int]domain.Kind{
		http.StatusBadRequest:          domain.KindValidation,
		http.StatusUnprocessableEntity: domain.KindValidation,
		http.StatusUnauthorized:        domain.KindAuth,
		http.StatusForbidden:           domain.KindAuthorization,
		http.StatusNotFound:            domain.KindNotFound,
		http.StatusConflict:            domain.KindConflict,
		http.StatusTooManyRequests:     domain.KindRateLimited,
		http.StatusInternalServerError: domain.KindServer,
		http.StatusBadGateway:          domain.KindServer,
	}
	for status, want := range cases {
		assert.Equal(t, want, domain.KindForStatus(status), "status %d", status)
	}
}

func TestUserMessage(t *testing.T) {
	withMsg := &domain.Error{Kind: domain.KindAuth, Message: "cuenta suspendida"}
	assert.Equal(t, "cuenta suspendida", domain.UserMessage(withMsg, "fallback"))

	noMsg := &domain.Error{Kind: domain.KindTransport, Err: errors.New("dial tcp")}
	assert.Equal(t, "fallback", domain.UserMessage(noMsg, "fallback"))
	assert.Equal(t, "fallback", domain.UserMessage(errors.New("x"), "fallback"))
}
