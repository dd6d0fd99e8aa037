//go:build unit

package user_test

import (
	"testing"

	"resource-booking/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain address", input: "alice@example.com", want: "alice@example.com"},
		{name: "lowercased", input: "Alice@Example.COM", want: "alice@example.com"},
		{name: "trimmed", input: "  alice@example.com  ", want: "alice@example.com"},
		{name: "missing at", input: "alice.example.com", wantErr: true},
		{name: "missing domain dot", input: "alice@example", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "contains whitespace", input: "a lice@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := user.NewEmail(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, user.ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.String())
		})
	}
}

func TestNewRole(t *testing.T) {
	for _, valid := range []string{"member", "admin"} {
		role, err := user.NewRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := user.NewRole("superuser")
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	assert.True(t, user.RoleAdmin.IsAdmin())
	assert.False(t, user.RoleMember.IsAdmin())
}
