package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/retailnet/retail_network_app/internal/core/domain"
)

// userIDKey and callerScopeKey hold the authenticated user's identity in the
// request context. Custom types prevent collisions.
const (
	userIDKey      = contextKey("userID")
	callerScopeKey = contextKey("callerScopeID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetCallerFromContext assembles the caller identity the auth middleware
// stored in the request context.
func GetCallerFromContext(c *gin.Context) (domain.CallerContext, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.CallerContext{}, false
	}
	scopeVal := c.Request.Context().Value(callerScopeKey)
	scopeID, ok := scopeVal.(string)
	if !ok || scopeID == "" {
		return domain.CallerContext{}, false
	}
	return domain.CallerContext{UserID: userID, ScopeID: scopeID}, true
}
