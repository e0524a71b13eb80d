package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ScopeRepo        ScopeRepositoryFacade
	WalletRepo       WalletRepositoryWithTx
	InventoryRepo    InventoryRepositoryWithTx
	ProductRepo      ProductRepositoryFacade
	StockRequestRepo StockRequestRepositoryWithTx
	FundRequestRepo  FundRequestRepositoryWithTx
	UserRepo         UserRepositoryFacade
}
