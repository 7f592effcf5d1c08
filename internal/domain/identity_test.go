package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoleAcceptsBareAndPrefixedForms(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"ROLE_ADMIN", RoleAdmin, false},
		{"ROLE_DRIVER", RoleDriver, false},
		{"ROLE_PASSENGER", RolePassenger, false},
		{"ADMIN", RoleAdmin, false},
		{"driver", RoleDriver, false},
		{"passenger", RolePassenger, false},
		{"manager", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestRoleShortStripsPrefix(t *testing.T) {
	assert.Equal(t, "DRIVER", RoleDriver.Short())
	assert.Equal(t, "PASSENGER", RolePassenger.Short())
	assert.Equal(t, "ADMIN", RoleAdmin.Short())
}

func TestHasRole(t *testing.T) {
	id := Identity{Role: RoleDriver}
	assert.True(t, id.HasRole(RoleDriver))
	assert.False(t, id.HasRole(RoleAdmin))
}

func TestNewUserEditSeedsCapacityMinimum(t *testing.T) {
	edit := NewUserEdit(AdminUser{ID: 2, Name: "D", Role: RoleDriver, Capacity: 4})
	assert.Equal(t, 4, edit.Capacity)

	edit = NewUserEdit(AdminUser{ID: 3, Name: "E", Role: RoleDriver})
	assert.Equal(t, 1, edit.Capacity)
}
