package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"
)

func TestProductionRolesRoundTrip(t *testing.T) {
	p := &Production{}
	require.NoError(t, p.SetRoles([]Role{
		{RoleID: "r1", Name: "Hamlet", Type: RoleTypeOnStage},
		{RoleID: "r2", Name: "Stage Manager", Type: RoleTypeOffStage, OffstageRole: "Stage Manager"},
	}))

	roles := p.GetRoles()
	require.Len(t, roles, 2)
	assert.Equal(t, "Hamlet", roles[0].Name)
	assert.Equal(t, RoleTypeOffStage, roles[1].Type)
}

func TestFindRole(t *testing.T) {
	p := &Production{}
	require.NoError(t, p.SetRoles([]Role{{RoleID: "r1", Name: "Ophelia"}}))

	role := p.FindRole("r1")
	require.NotNil(t, role)
	assert.Equal(t, "Ophelia", role.Name)

	assert.Nil(t, p.FindRole("missing"))
}

// Битый jsonb не должен ронять чтение постановки
func TestGetRolesOnMalformedJSON(t *testing.T) {
	p := &Production{Roles: datatypes.JSON([]byte(`{"not":"a list"`))}
	assert.Nil(t, p.GetRoles())
}

func TestRequiresSkill(t *testing.T) {
	role := Role{AdditionalRequirements: []string{RequiresSinging}}
	assert.True(t, role.RequiresSkill(RequiresSinging))
	assert.False(t, role.RequiresSkill(RequiresDancing))
}
