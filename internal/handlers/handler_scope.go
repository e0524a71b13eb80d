package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// scopeHandler handles HTTP requests for the scope hierarchy.
type scopeHandler struct {
	scopeService portssvc.ScopeSvcFacade
}

func newScopeHandler(ss portssvc.ScopeSvcFacade) *scopeHandler {
	return &scopeHandler{scopeService: ss}
}

// registerScopeRoutes registers routes related to scopes.
func registerScopeRoutes(rg *gin.RouterGroup, scopeService portssvc.ScopeSvcFacade) {
	h := newScopeHandler(scopeService)

	scopes := rg.Group("/scopes")
	{
		scopes.POST("", h.createScope)
		scopes.GET("/:scopeID", h.getScope)
		scopes.GET("/:scopeID/children", h.listChildren)
		scopes.DELETE("/:scopeID", h.deactivateScope)
	}
}

func (h *scopeHandler) createScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateScope", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	scope, err := h.scopeService.CreateScope(c.Request.Context(), req, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create scope")
		return
	}

	logger.Info("Scope created", slog.String("scope_id", scope.ScopeID), slog.String("level", string(scope.Level)))
	c.JSON(http.StatusCreated, dto.ToScopeResponse(scope))
}

func (h *scopeHandler) getScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	scope, err := h.scopeService.GetScopeByID(c.Request.Context(), scopeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve scope")
		return
	}
	c.JSON(http.StatusOK, dto.ToScopeResponse(scope))
}

func (h *scopeHandler) listChildren(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	children, err := h.scopeService.ListChildren(c.Request.Context(), scopeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list children")
		return
	}
	c.JSON(http.StatusOK, dto.ToScopeResponses(children))
}

func (h *scopeHandler) deactivateScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.scopeService.DeactivateScope(c.Request.Context(), scopeID, caller); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate scope")
		return
	}

	logger.Info("Scope deactivated", slog.String("scope_id", scopeID))
	c.Status(http.StatusNoContent)
}
