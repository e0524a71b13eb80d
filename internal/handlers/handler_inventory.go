package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// inventoryHandler handles stock reads and administrative adjustments.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
	scopeService     portssvc.ScopeSvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade, ss portssvc.ScopeSvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is, scopeService: ss}
}

// registerInventoryRoutes registers routes related to stock balances and the
// inventory ledger.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade, scopeService portssvc.ScopeSvcFacade) {
	h := newInventoryHandler(inventoryService, scopeService)

	rg.GET("/scopes/:scopeID/stock", h.listStockBalances)
	rg.GET("/scopes/:scopeID/stock/:productID", h.getStockBalance)
	rg.GET("/scopes/:scopeID/stock/:productID/ledger", h.listInventoryEntries)
	rg.POST("/inventory/adjust", h.adjustStock)
}

func (h *inventoryHandler) listStockBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	balances, err := h.inventoryService.ListBalancesByScope(c.Request.Context(), caller, scopeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list stock balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockBalanceResponses(balances))
}

func (h *inventoryHandler) getStockBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")
	productID := c.Param("productID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	balance, err := h.inventoryService.GetBalance(c.Request.Context(), caller, scopeID, productID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockBalanceResponse(balance))
}

func (h *inventoryHandler) listInventoryEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")
	productID := c.Param("productID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.inventoryService.ListEntries(c.Request.Context(), caller, scopeID, productID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list inventory entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListInventoryEntriesResponse{
		Entries:   dto.ToInventoryEntryResponses(entries),
		NextToken: nextToken,
	})
}

// adjustStock applies an administrative signed quantity change. Adjustments
// may drive a balance negative; stocktake corrections sometimes must.
func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.scopeService.AuthorizeScopeAction(c.Request.Context(), caller, req.ScopeID); err != nil {
		respondServiceError(c, logger, err, "Failed to adjust stock")
		return
	}

	err := h.inventoryService.Move(c.Request.Context(), portssvc.MoveParams{
		ScopeID:       req.ScopeID,
		ProductID:     req.ProductID,
		QtyChange:     req.QtyChange,
		TxnType: domain.TxnAdjustment,
		RefType: "ADJUSTMENT",
		// Manual adjustments have no entity reference; the reason text
		// stands in so the ledger row stays explainable.
		RefID:         req.Reason,
		AllowNegative: true,
		ActorUserID:   caller.UserID,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to adjust stock")
		return
	}

	logger.Info("Stock adjusted",
		slog.String("scope_id", req.ScopeID),
		slog.String("product_id", req.ProductID),
		slog.Int64("qty_change", req.QtyChange),
	)
	c.Status(http.StatusNoContent)
}
