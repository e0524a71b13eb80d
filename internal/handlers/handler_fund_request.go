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

// fundRequestHandler handles the fund request workflow.
type fundRequestHandler struct {
	fundRequestService portssvc.FundRequestSvcFacade
}

func newFundRequestHandler(frs portssvc.FundRequestSvcFacade) *fundRequestHandler {
	return &fundRequestHandler{fundRequestService: frs}
}

// registerFundRequestRoutes registers routes for the fund request workflow.
func registerFundRequestRoutes(rg *gin.RouterGroup, fundRequestService portssvc.FundRequestSvcFacade) {
	h := newFundRequestHandler(fundRequestService)

	requests := rg.Group("/fund-requests")
	{
		requests.POST("", h.createFundRequest)
		requests.GET("/:requestID", h.getFundRequest)
		requests.POST("/:requestID/approve", h.approveFundRequest)
		requests.POST("/:requestID/reject", h.rejectFundRequest)
	}
	rg.GET("/scopes/:scopeID/fund-requests/outgoing", h.listAsRequester)
	rg.GET("/scopes/:scopeID/fund-requests/incoming", h.listAsFunder)
}

func (h *fundRequestHandler) createFundRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFundRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFundRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.fundRequestService.Create(c.Request.Context(), req, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create fund request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFundRequestResponse(request))
}

func (h *fundRequestHandler) getFundRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.fundRequestService.GetByID(c.Request.Context(), requestID, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve fund request")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

func (h *fundRequestHandler) approveFundRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	request, err := h.fundRequestService.Approve(c.Request.Context(), requestID, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve fund request")
		return
	}

	logger.Info("Fund request approved", slog.String("request_id", requestID))
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

func (h *fundRequestHandler) rejectFundRequest(c *gin.Context) {
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

	request, err := h.fundRequestService.Reject(c.Request.Context(), requestID, req.Reason, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject fund request")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRequestResponse(request))
}

func (h *fundRequestHandler) listAsRequester(c *gin.Context) {
	h.list(c, h.fundRequestService.ListAsRequester, "Failed to list fund requests")
}

func (h *fundRequestHandler) listAsFunder(c *gin.Context) {
	h.list(c, h.fundRequestService.ListAsFunder, "Failed to list fund requests")
}

// list is the shared shape of the requester-side and funder-side listings.
func (h *fundRequestHandler) list(
	c *gin.Context,
	op func(ctx context.Context, scopeID string, params dto.ListParams, caller domain.CallerContext) ([]domain.FundRequest, *string, error),
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

	c.JSON(http.StatusOK, dto.ListFundRequestsResponse{
		Requests:  dto.ToFundRequestResponses(requests),
		NextToken: nextToken,
	})
}
