package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/middleware"
	"github.com/retailnet/retail_network_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes.
	registerAuthRoutes(r, cfg, services.User)

	// Everything else sits behind the auth middleware.
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-surface registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerScopeRoutes(v1, services.Scope)
	registerWalletRoutes(v1, services.Wallet, services.Scope)
	registerInventoryRoutes(v1, services.Inventory, services.Scope)
	registerProductRoutes(v1, services.Product)
	registerStockRequestRoutes(v1, services.StockRequest)
	registerFundRequestRoutes(v1, services.FundRequest)
}
