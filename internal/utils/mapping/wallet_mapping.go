package mapping

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:    d.WalletID,
		ScopeID:     d.ScopeID,
		Type:        models.WalletType(d.Type),
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:    m.WalletID,
		ScopeID:     m.ScopeID,
		Type:        domain.WalletType(m.Type),
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWalletSlice converts a slice of model Wallets to domain Wallets
func ToDomainWalletSlice(ms []models.Wallet) []domain.Wallet {
	ds := make([]domain.Wallet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWallet(m)
	}
	return ds
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:      d.EntryID,
		FromWalletID: d.FromWalletID,
		ToWalletID:   d.ToWalletID,
		Amount:       d.Amount,
		RefType:      models.LedgerRefType(d.RefType),
		RefID:        d.RefID,
		Notes:        d.Notes,
		AdminCharge:  d.Charges.AdminCharge,
		Tax:          d.Charges.Tax,
		Commission:   d.Charges.Commission,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      m.EntryID,
		FromWalletID: m.FromWalletID,
		ToWalletID:   m.ToWalletID,
		Amount:       m.Amount,
		RefType:      domain.LedgerRefType(m.RefType),
		RefID:        m.RefID,
		Notes:        m.Notes,
		Charges: domain.LedgerCharges{
			AdminCharge: m.AdminCharge,
			Tax:         m.Tax,
			Commission:  m.Commission,
		},
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
