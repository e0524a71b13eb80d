package domain

// CallerContext identifies the authenticated caller for a workflow call. It
// is built by the boundary layer and threaded explicitly into every service
// method that needs authorization; services never read ambient state for it.
type CallerContext struct {
	UserID  string
	ScopeID string
}
