package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevelOrdering(t *testing.T) {
	assert.True(t, RoleUser.Level() < RoleIntercessor.Level())
	assert.True(t, RoleIntercessor.Level() < RoleAdmin.Level())
	assert.True(t, RoleAdmin.Level() < RoleSuperadmin.Level())
}

func TestRoleLevelUnknown(t *testing.T) {
	assert.Equal(t, -1, Role("moderator").Level())
	assert.Equal(t, -1, Role("").Level())

	// Unknown roles rank below every valid role.
	assert.True(t, Role("moderator").Level() < RoleUser.Level())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"user", true},
		{"intercessor", true},
		{"admin", true},
		{"superadmin", true},
		{"Admin", false},
		{"moderator", false},
		{"", false},
	}

	for _, tt := range tests {
		role, ok := ParseRole(tt.input)
		assert.Equal(t, tt.valid, ok, "ParseRole(%q)", tt.input)
		if tt.valid {
			assert.Equal(t, Role(tt.input), role)
		}
	}
}
