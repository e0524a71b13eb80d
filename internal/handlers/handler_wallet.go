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

// walletHandler handles wallet reads and the administrative seed endpoint.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	scopeService  portssvc.ScopeSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, ss portssvc.ScopeSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws, scopeService: ss}
}

// registerWalletRoutes registers routes related to wallets and their ledger.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, scopeService portssvc.ScopeSvcFacade) {
	h := newWalletHandler(walletService, scopeService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("/:walletID", h.getWallet)
		wallets.GET("/:walletID/ledger", h.listLedgerEntries)
		wallets.POST("/seed", h.seedWallet)
	}
	rg.GET("/scopes/:scopeID/wallets", h.listWalletsByScope)
}

func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), caller, walletID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) listWalletsByScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	scopeID := c.Param("scopeID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	wallets, err := h.walletService.ListWalletsByScope(c.Request.Context(), caller, scopeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallets")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponses(wallets))
}

func (h *walletHandler) listLedgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.walletService.ListLedgerEntries(c.Request.Context(), caller, walletID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	})
}

// seedWallet credits a wallet from outside the system: a transfer with no
// source wallet. The caller's scope must be self-or-ancestor of the target.
func (h *walletHandler) seedWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SeedWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SeedWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.scopeService.AuthorizeScopeAction(c.Request.Context(), caller, req.ScopeID); err != nil {
		respondServiceError(c, logger, err, "Failed to seed wallet")
		return
	}

	wallet, err := h.walletService.GetOrCreateWallet(c.Request.Context(), req.ScopeID, req.WalletType, caller.UserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to seed wallet")
		return
	}

	entry, err := h.walletService.Transfer(c.Request.Context(), portssvc.TransferParams{
		ToWalletID:  wallet.WalletID,
		Amount:      req.Amount,
		RefType:     domain.RefSeed,
		RefID:       wallet.WalletID,
		Notes:       req.Notes,
		ActorUserID: caller.UserID,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to seed wallet")
		return
	}

	logger.Info("Wallet seeded",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("amount", req.Amount.String()),
	)
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}
