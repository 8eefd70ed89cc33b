package models

// Organization is a tenant row. NextEntrySeq backs the per-tenant
// human-readable entry number allocation.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	NextEntrySeq   int64  `db:"next_entry_seq"`
	AuditFields
}

// UserOrganization links a user to an organization with a role.
type UserOrganization struct {
	UserID         string `db:"user_id"`
	OrganizationID string `db:"organization_id"`
	Role           string `db:"role"`
	AuditFields
}
