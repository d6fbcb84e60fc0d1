package constant

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapManageCatalog, true},
		{RoleAdmin, CapTrackAnyUser, true},
		{RoleAdmin, CapEngage, false},
		{RoleSubscriber, CapTrackProgress, true},
		{RoleSubscriber, CapCheckout, true},
		{RoleSubscriber, CapTrackAnyUser, false},
		{Role("guest"), CapTrackProgress, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.cap), "%s %s", tt.role, tt.cap)
	}

	_, ok := ParseRole("root")
	assert.False(t, ok)
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)
}
