package mapping

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/models"
)

// ToDomainStockBalance converts a model StockBalance to a domain StockBalance
func ToDomainStockBalance(m models.StockBalance) domain.StockBalance {
	return domain.StockBalance{
		ScopeID:     m.ScopeID,
		ProductID:   m.ProductID,
		QtyOnHand:   m.QtyOnHand,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockBalanceSlice converts a slice of model StockBalances to domain StockBalances
func ToDomainStockBalanceSlice(ms []models.StockBalance) []domain.StockBalance {
	ds := make([]domain.StockBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockBalance(m)
	}
	return ds
}

// ToModelInventoryLedgerEntry converts a domain InventoryLedgerEntry to its model
func ToModelInventoryLedgerEntry(d domain.InventoryLedgerEntry) models.InventoryLedgerEntry {
	return models.InventoryLedgerEntry{
		EntryID:   d.EntryID,
		ScopeID:   d.ScopeID,
		ProductID: d.ProductID,
		QtyChange: d.QtyChange,
		TxnType:   string(d.TxnType),
		RefType:   string(d.RefType),
		RefID:     d.RefID,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainInventoryLedgerEntry converts a model InventoryLedgerEntry to its domain form
func ToDomainInventoryLedgerEntry(m models.InventoryLedgerEntry) domain.InventoryLedgerEntry {
	return domain.InventoryLedgerEntry{
		EntryID:   m.EntryID,
		ScopeID:   m.ScopeID,
		ProductID: m.ProductID,
		QtyChange: m.QtyChange,
		TxnType:   domain.InventoryTxnType(m.TxnType),
		RefType:   m.RefType,
		RefID:     m.RefID,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToDomainInventoryLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainInventoryLedgerEntrySlice(ms []models.InventoryLedgerEntry) []domain.InventoryLedgerEntry {
	ds := make([]domain.InventoryLedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryLedgerEntry(m)
	}
	return ds
}
