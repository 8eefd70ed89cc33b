package models

// User is an authenticated actor row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
