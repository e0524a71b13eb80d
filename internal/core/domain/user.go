package domain

// User is an authenticated operator attached to one scope. Kept minimal: the
// core only needs "who is calling and for which scope".
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	ScopeID      string `json:"scopeID"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
