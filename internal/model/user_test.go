package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleList_ValueScan(t *testing.T) {
	roles := RoleList{RoleUser, RoleAdmin}

	value, err := roles.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `["user","admin"]`, string(value.([]byte)))

	var scanned RoleList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, roles, scanned)
}

func TestRoleList_ScanString(t *testing.T) {
	var roles RoleList
	assert.NoError(t, roles.Scan(`["admin"]`))
	assert.Equal(t, RoleList{RoleAdmin}, roles)
}

func TestRoleList_ScanNil(t *testing.T) {
	var roles RoleList
	assert.NoError(t, roles.Scan(nil))
	assert.Empty(t, roles)
}

func TestUser_EffectiveRoles(t *testing.T) {
	tests := []struct {
		name     string
		stored   RoleList
		expected []string
	}{
		{"plain user", RoleList{RoleUser}, []string{RoleUser}},
		{"admin gains base role", RoleList{RoleAdmin}, []string{RoleUser, RoleAdmin}},
		{"empty roles still hold base role", nil, []string{RoleUser}},
		{"base role not duplicated", RoleList{RoleUser, RoleAdmin}, []string{RoleUser, RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.stored}
			assert.Equal(t, tt.expected, u.EffectiveRoles())
		})
	}
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Roles: RoleList{RoleAdmin}}).IsAdmin())
	assert.False(t, (&User{Roles: RoleList{RoleUser}}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
