package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanManageProject(t *testing.T) {
	p := &Project{ManagerID: "u1"}

	assert.True(t, Actor{ID: "admin-1", Role: RoleAdmin}.CanManageProject(p))
	assert.True(t, Actor{ID: "u1", Role: RoleManager}.CanManageProject(p))
	assert.False(t, Actor{ID: "u2", Role: RoleManager}.CanManageProject(p))
	assert.False(t, Actor{ID: "u1", Role: "guest"}.CanManageProject(p), "unknown roles never manage")
}

func TestActorValidate(t *testing.T) {
	assert.NoError(t, Actor{ID: "u1", Role: RoleManager}.Validate())
	assert.Error(t, Actor{Role: RoleManager}.Validate())
	assert.Error(t, Actor{ID: "u1", Role: "owner"}.Validate())
}
