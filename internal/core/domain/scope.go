package domain

// ScopeLevel is the position of a scope node in the geographic hierarchy.
type ScopeLevel string

const (
	LevelCompany  ScopeLevel = "COMPANY"
	LevelState    ScopeLevel = "STATE"
	LevelDistrict ScopeLevel = "DISTRICT"
	LevelLocal    ScopeLevel = "LOCAL"
)

// ScopeNode is an organizational unit that owns inventory and wallets.
// The scope graph is a forest of out-trees with exactly one COMPANY root per
// company; only COMPANY nodes have a nil ParentID.
type ScopeNode struct {
	ScopeID   string     `json:"scopeID"`  // Primary Key (UUID)
	CompanyID string     `json:"companyID"`
	Name      string     `json:"name"`
	Level     ScopeLevel `json:"level"`
	ParentID  *string    `json:"parentID"` // nil only for the COMPANY root
	IsActive  bool       `json:"isActive"` // Soft delete flag
	AuditFields
}

// IsValidChildLevel reports whether a node of level child may attach directly
// under a parent of level parent. The chain is COMPANY→STATE→DISTRICT→LOCAL,
// except that LOCAL may attach under DISTRICT, STATE, or COMPANY directly
// (flattening for small companies).
func IsValidChildLevel(parent, child ScopeLevel) bool {
	switch child {
	case LevelState:
		return parent == LevelCompany
	case LevelDistrict:
		return parent == LevelState
	case LevelLocal:
		return parent == LevelDistrict || parent == LevelState || parent == LevelCompany
	default:
		return false
	}
}

// IsValidRequestPair reports whether a scope of level from may raise a stock
// request against a scope of level to: STATE requests from COMPANY, DISTRICT
// from STATE, and LOCAL from DISTRICT, STATE, or COMPANY.
func IsValidRequestPair(from, to ScopeLevel) bool {
	switch from {
	case LevelState:
		return to == LevelCompany
	case LevelDistrict:
		return to == LevelState
	case LevelLocal:
		return to == LevelDistrict || to == LevelState || to == LevelCompany
	default:
		return false
	}
}
