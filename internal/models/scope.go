package models

// ScopeLevel mirrors the domain scope level in the persistence layer.
type ScopeLevel string

const (
	LevelCompany  ScopeLevel = "COMPANY"
	LevelState    ScopeLevel = "STATE"
	LevelDistrict ScopeLevel = "DISTRICT"
	LevelLocal    ScopeLevel = "LOCAL"
)

// ScopeNode represents one node of the scope hierarchy.
// ParentID is nil only for COMPANY roots.
type ScopeNode struct {
	ScopeID   string     `db:"scope_id"`
	CompanyID string     `db:"company_id"`
	Name      string     `db:"name"`
	Level     ScopeLevel `db:"level"`
	ParentID  *string    `db:"parent_id"`
	IsActive  bool       `db:"is_active"`
	AuditFields
}
