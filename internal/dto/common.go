package dto

// ListParams defines token-paginated query parameters shared by ledger and
// request listings.
type ListParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}
