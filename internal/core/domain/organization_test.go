package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/savorworks/ledger_backend/internal/core/domain"
)

func TestUserOrganizationRole_Satisfies(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Satisfies(domain.RoleMember))
	assert.True(t, domain.RoleMember.Satisfies(domain.RoleReadOnly))
	assert.True(t, domain.RoleReadOnly.Satisfies(domain.RoleReadOnly))
	assert.False(t, domain.RoleReadOnly.Satisfies(domain.RoleMember))
	assert.False(t, domain.RoleMember.Satisfies(domain.RoleAdmin))
}
