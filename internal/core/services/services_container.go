package services

import (
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The scope service comes first since everything else authorizes
	// through it.
	scopeSvc := NewScopeService(repos.ScopeRepo)
	container.Scope = scopeSvc

	container.Wallet = NewWalletService(repos.WalletRepo, scopeSvc)
	container.Inventory = NewInventoryService(repos.InventoryRepo, scopeSvc)
	container.Pricing = NewPricingService(repos.ProductRepo)
	container.Product = NewProductService(repos.ProductRepo, scopeSvc)
	container.User = NewUserService(repos.UserRepo, repos.ScopeRepo)

	container.StockRequest = NewStockRequestService(
		repos.StockRequestRepo,
		scopeSvc,
		container.Product,
		container.Wallet,
		container.Inventory,
		container.Pricing,
	)
	container.FundRequest = NewFundRequestService(
		repos.FundRequestRepo,
		scopeSvc,
		container.Wallet,
	)

	return container
}

// Compile time checks that every service satisfies its facade.
var (
	_ portssvc.ScopeSvcFacade        = (*ScopeService)(nil)
	_ portssvc.WalletSvcFacade       = (*WalletService)(nil)
	_ portssvc.InventorySvcFacade    = (*InventoryService)(nil)
	_ portssvc.PricingSvc            = (*PricingService)(nil)
	_ portssvc.ProductSvcFacade      = (*ProductService)(nil)
	_ portssvc.StockRequestSvcFacade = (*StockRequestService)(nil)
	_ portssvc.FundRequestSvcFacade  = (*FundRequestService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
)
