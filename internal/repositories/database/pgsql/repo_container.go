package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ScopeRepo:        newPgxScopeRepository(dbPool),
		WalletRepo:       newPgxWalletRepository(dbPool),
		InventoryRepo:    newPgxInventoryRepository(dbPool),
		ProductRepo:      newPgxProductRepository(dbPool),
		StockRequestRepo: newPgxStockRequestRepository(dbPool),
		FundRequestRepo:  newPgxFundRequestRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
