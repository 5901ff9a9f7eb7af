package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

func TestRoleOf_SinUsuarioEsGuest(t *testing.T) {
	assert.Equal(t, entity.RoleGuest, entity.RoleOf(nil))
}

func TestRoleOf_DevuelveRolDelUsuario(t *testing.T) {
	assert.Equal(t, entity.RoleStaff, entity.RoleOf(&entity.User{ID: "u1", Role: entity.RoleStaff}))
	assert.Equal(t, entity.RoleAdmin, entity.RoleOf(&entity.User{ID: "u2", Role: entity.RoleAdmin}))
}

func TestParseRole_DesconocidoEsGuest(t *testing.T) {
	assert.Equal(t, entity.RoleAdmin, entity.ParseRole("admin"))
	assert.Equal(t, entity.RoleStaff, entity.ParseRole("staff"))
	assert.Equal(t, entity.RoleGuest, entity.ParseRole("guest"))
	assert.Equal(t, entity.RoleGuest, entity.ParseRole("superuser"))
	assert.Equal(t, entity.RoleGuest, entity.ParseRole("ADMIN"))
	assert.Equal(t, entity.RoleGuest, entity.ParseRole(""))
}

func TestRole_Registrable(t *testing.T) {
	assert.True(t, entity.RoleStaff.Registrable())
	assert.True(t, entity.RoleAdmin.Registrable())
	assert.False(t, entity.RoleGuest.Registrable(), "guest es solo el estado sin sesión")
}
