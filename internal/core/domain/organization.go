package domain

// Organization is a tenant of the suite: a single restaurant or store whose
// ledger is fully isolated from every other tenant.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines what a member may do within an organization.
type UserOrganizationRole string

const (
	RoleReadOnly UserOrganizationRole = "READ_ONLY"
	RoleMember   UserOrganizationRole = "MEMBER"
	RoleAdmin    UserOrganizationRole = "ADMIN"
)

// roleRank orders roles by privilege for authorization checks.
var roleRank = map[UserOrganizationRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether the role grants at least the required privilege.
func (r UserOrganizationRole) Satisfies(required UserOrganizationRole) bool {
	return roleRank[r] >= roleRank[required]
}

// UserOrganization links a user to an organization with a role.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	AuditFields
}
