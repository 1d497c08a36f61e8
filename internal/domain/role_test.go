package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFromLegacyCode(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleFromLegacyCode(18))
	assert.Equal(t, RoleTeamLeader, RoleFromLegacyCode(20))
	assert.Equal(t, RoleTechnician, RoleFromLegacyCode(21))
	assert.Equal(t, RoleSubTechnician, RoleFromLegacyCode(22))
	assert.Equal(t, RoleRestricted, RoleFromLegacyCode(23))
	assert.Equal(t, RoleSuperUser, RoleFromLegacyCode(26))

	// Unmapped codes fall through to RoleUnknown.
	assert.Equal(t, RoleUnknown, RoleFromLegacyCode(0))
	assert.Equal(t, RoleUnknown, RoleFromLegacyCode(19))
	assert.Equal(t, RoleUnknown, RoleFromLegacyCode(99))
}

func TestRoleLegacyCodeRoundTrip(t *testing.T) {
	for _, code := range []int64{18, 20, 21, 22, 23, 26} {
		assert.Equal(t, code, RoleFromLegacyCode(code).LegacyCode())
	}
	assert.Equal(t, int64(0), RoleUnknown.LegacyCode())
}

func TestIsTechnicianLevel(t *testing.T) {
	assert.True(t, RoleTechnician.IsTechnicianLevel())
	assert.True(t, RoleSubTechnician.IsTechnicianLevel())
	assert.False(t, RoleAdmin.IsTechnicianLevel())
	assert.False(t, RoleTeamLeader.IsTechnicianLevel())
	assert.False(t, RoleRestricted.IsTechnicianLevel())
}
