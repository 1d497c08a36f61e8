package domain

// Role is the named form of the legacy numeric role codes carried on users.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleTeamLeader    Role = "TEAM_LEADER"
	RoleTechnician    Role = "TECHNICIAN"
	RoleSubTechnician Role = "SUB_TECHNICIAN"
	RoleRestricted    Role = "RESTRICTED"
	RoleSuperUser     Role = "SUPER_USER"
	RoleUnknown       Role = ""
)

// Legacy numeric role codes as stored in the users table.
const (
	LegacyRoleAdmin         int64 = 18
	LegacyRoleTeamLeader    int64 = 20
	LegacyRoleTechnician    int64 = 21
	LegacyRoleSubTechnician int64 = 22
	LegacyRoleRestricted    int64 = 23
	LegacyRoleSuperUser     int64 = 26
)

var legacyRoleCodes = map[int64]Role{
	LegacyRoleAdmin:         RoleAdmin,
	LegacyRoleTeamLeader:    RoleTeamLeader,
	LegacyRoleTechnician:    RoleTechnician,
	LegacyRoleSubTechnician: RoleSubTechnician,
	LegacyRoleRestricted:    RoleRestricted,
	LegacyRoleSuperUser:     RoleSuperUser,
}

// RoleFromLegacyCode translates a stored role code. Unknown codes yield
// RoleUnknown, which every policy check denies.
func RoleFromLegacyCode(code int64) Role {
	return legacyRoleCodes[code]
}

// LegacyCode returns the numeric code for a role, or 0 when unmapped.
func (r Role) LegacyCode() int64 {
	for code, role := range legacyRoleCodes {
		if role == r {
			return code
		}
	}
	return 0
}

// IsTechnicianLevel reports whether the role is a technician variant.
func (r Role) IsTechnicianLevel() bool {
	return r == RoleTechnician || r == RoleSubTechnician
}
