package domain

// User is an authenticated actor of the suite.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
