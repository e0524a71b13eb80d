package models

// User is an authenticated operator attached to one scope.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	ScopeID      string `db:"scope_id"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
