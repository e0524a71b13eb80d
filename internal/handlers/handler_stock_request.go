package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// stockRequestHandler handles the stock request workflow.
type stockRequestHandler struct {
	stockRequestService portssvc.StockRequestSvcFacade
}

func newStockRequestHandler(srs portssvc.StockRequestSvcFacade) *stockRequestHandler {
	return &stockRequestHandler{stockRequestService: srs}
}

// registerStockRequestRoutes registers routes for the stock request workflow.
func registerStockRequestRoutes(rg *gin.RouterGroup, stockRequestService portssvc.StockRequestSvcFacade) {
	h := newStockRequestHandler(stockRequestService)

	requests := rg.Group("/stock-requests")
	{
		requests.POST("", h.createStockRequest)
		requests.GET("/:requestID", h.getStockRequest)
		requests.POST("/:requestID/submit", h.submitStockRequest)
		requests.POST("/:requestID/approve", h.approveStockRequest)
		requests.POST("/:requestID/reject", h.rejectStockRequest)
		requests.POST("/:requestID/fulfill", h.fulfillStockRequest)
	}
	rg.GET("/scopes/:scopeID/stock-requests/outgoing", h.listAsRequester)
	rg.GET("/scopes/:scopeID/stock-requests/incoming", h.listAsSupplier)
}

func (h *stockRequestHandler) createStockRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStockRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateStockRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.stockRequestService.Create(c.Request.Context(), req, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create stock request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockRequestResponse(request))
}

func (h *stockRequestHandler) getStockRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.stockRequestService.GetByID(c.Request.Context(), requestID, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve stock request")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockRequestResponse(request))
}

func (h *stockRequestHandler) submitStockRequest(c *gin.Context) {
	h.transition(c, h.stockRequestService.Submit, "Failed to submit stock request")
}

func (h *stockRequestHandler) approveStockRequest(c *gin.Context) {
	h.transition(c, h.stockRequestService.Approve, "Failed to approve stock request")
}

func (h *stockRequestHandler) fulfillStockRequest(c *gin.Context) {
	h.transition(c, h.stockRequestService.Fulfill, "Failed to fulfill stock request")
}

func (h *stockRequestHandler) rejectStockRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.stockRequestService.Reject(c.Request.Context(), requestID, req.Reason, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject stock request")
		return
	}
	c.JSON(http.StatusOK, dto.ToStockRequestResponse(request))
}

// transition is the shared shape of submit, approve and fulfill.
func (h *stockRequestHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, requestID string, caller domain.CallerContext) (*domain.StockRequest, error),
	fallback string,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := op(c.Request.Context(), requestID, caller)
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}

	logger.Info("Stock request transitioned",
		slog.String("request_id", requestID),
		slog.String("status", string(request.Status)),
	)
	c.JSON(http.StatusOK, dto.ToStockRequestResponse(request))
}

func (h *stockRequestHandler) listAsRequester(c *gin.Context) {
	h.list(c, h.stockRequestService.ListAsRequester, "Failed to list stock requests")
}

func (h *stockRequestHandler) listAsSupplier(c *gin.Context) {
	h.list(c, h.stockRequestService.ListAsSupplier, "Failed to list stock requests")
}

// list is the shared shape of the requester-side and supplier-side listings.
func (h *stockRequestHandler) list(
	c *gin.Context,
	op func(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.StockRequest, *string, error),
	fallback string,
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, nextToken, err := op(c.Request.Context(), scopeID, params, caller)
	if err != nil {
		respondServiceError(c, logger, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ListStockRequestsResponse{
		Requests:  dto.ToStockRequestResponses(requests),
		NextToken: nextToken,
	})
}
