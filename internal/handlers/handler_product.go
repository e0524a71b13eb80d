package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

// productHandler handles HTTP requests for the product catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers routes related to products and per-scope
// price overrides.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
	}
	rg.PUT("/scopes/:scopeID/prices/:productID", h.setScopePrice)
	rg.DELETE("/scopes/:scopeID/prices/:productID", h.removeScopePrice)
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, caller)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params.CompanyID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

func (h *productHandler) setScopePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")
	productID := c.Param("productID")

	var req dto.SetScopePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.productService.SetScopePrice(c.Request.Context(), scopeID, productID, req, caller); err != nil {
		respondServiceError(c, logger, err, "Failed to set scope price")
		return
	}

	logger.Info("Scope price set", slog.String("scope_id", scopeID), slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}

func (h *productHandler) removeScopePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")
	productID := c.Param("productID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.productService.RemoveScopePrice(c.Request.Context(), scopeID, productID, caller); err != nil {
		respondServiceError(c, logger, err, "Failed to remove scope price")
		return
	}
	c.Status(http.StatusNoContent)
}
