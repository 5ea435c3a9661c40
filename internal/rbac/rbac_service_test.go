package rbac

import (
	"testing"

	"go-metallurg/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{RoleEmployee, "techcard", "read", true},
		{RoleEmployee, "techcard", "execute", true},
		{RoleEmployee, "techcard", "create", false},
		{RoleEmployee, "assignment", "read", false},
		{RoleEmployee, "assignment", "work", true},
		{RoleMaster, "techcard", "read", true},
		{RoleMaster, "assignment", "import", true},
		{RoleMaster, "techcard", "delete", false},
		{RoleMaster, "user", "create", false},
		{RoleDirector, "assignment", "import", true},
		{RoleDirector, "techcard", "delete", true},
		{RoleDirector, "department", "delete", false},
		{RoleAdmin, "user", "delete", true},
		{RoleAdmin, "department", "create", true},
		{"operator", "techcard", "read", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestRBACService_PermissionsFor(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsFor(RoleMaster)
	assert.NoError(t, err)
	assert.Contains(t, perms, Permission{Resource: "techcard", Action: "create"})
	assert.Contains(t, perms, Permission{Resource: "techcard", Action: "read"})
	assert.NotContains(t, perms, Permission{Resource: "techcard", Action: "delete"})

	unknown, err := svc.PermissionsFor("guest")
	assert.NoError(t, err)
	assert.Empty(t, unknown)
}
