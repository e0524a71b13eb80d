package mapping

import (
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/models"
)

// ToModelStockRequest converts a domain StockRequest header to its model.
// Items are persisted separately as models.StockRequestItem rows.
func ToModelStockRequest(d domain.StockRequest) models.StockRequest {
	return models.StockRequest{
		RequestID:       d.RequestID,
		FromScopeID:     d.FromScopeID,
		ToScopeID:       d.ToScopeID,
		Status:          models.StockRequestStatus(d.Status),
		RejectionReason: d.RejectionReason,
		RequestedAt:     d.RequestedAt,
		ApprovedAt:      d.ApprovedAt,
		FulfilledAt:     d.FulfilledAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockRequest converts a model StockRequest header and its item rows
// to the domain aggregate.
func ToDomainStockRequest(m models.StockRequest, items []models.StockRequestItem) domain.StockRequest {
	ds := domain.StockRequest{
		RequestID:       m.RequestID,
		FromScopeID:     m.FromScopeID,
		ToScopeID:       m.ToScopeID,
		Status:          domain.StockRequestStatus(m.Status),
		RejectionReason: m.RejectionReason,
		RequestedAt:     m.RequestedAt,
		ApprovedAt:      m.ApprovedAt,
		FulfilledAt:     m.FulfilledAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	ds.Items = make([]domain.StockRequestItem, len(items))
	for i, it := range items {
		ds.Items[i] = domain.StockRequestItem{
			ItemID:    it.ItemID,
			RequestID: it.RequestID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
		}
	}
	return ds
}

// ToModelStockRequestItems converts domain request items to model rows.
func ToModelStockRequestItems(ds []domain.StockRequestItem) []models.StockRequestItem {
	ms := make([]models.StockRequestItem, len(ds))
	for i, d := range ds {
		ms[i] = models.StockRequestItem{
			ItemID:    d.ItemID,
			RequestID: d.RequestID,
			ProductID: d.ProductID,
			Qty:       d.Qty,
		}
	}
	return ms
}

// ToModelFundRequest converts a domain FundRequest to a model FundRequest
func ToModelFundRequest(d domain.FundRequest) models.FundRequest {
	return models.FundRequest{
		RequestID:       d.RequestID,
		FromScopeID:     d.FromScopeID,
		ToScopeID:       d.ToScopeID,
		Amount:          d.Amount,
		Status:          models.FundRequestStatus(d.Status),
		Notes:           d.Notes,
		RejectionReason: d.RejectionReason,
		RequestedAt:     d.RequestedAt,
		ProcessedAt:     d.ProcessedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFundRequest converts a model FundRequest to a domain FundRequest
func ToDomainFundRequest(m models.FundRequest) domain.FundRequest {
	return domain.FundRequest{
		RequestID:       m.RequestID,
		FromScopeID:     m.FromScopeID,
		ToScopeID:       m.ToScopeID,
		Amount:          m.Amount,
		Status:          domain.FundRequestStatus(m.Status),
		Notes:           m.Notes,
		RejectionReason: m.RejectionReason,
		RequestedAt:     m.RequestedAt,
		ProcessedAt:     m.ProcessedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundRequestSlice converts a slice of model FundRequests to domain FundRequests
func ToDomainFundRequestSlice(ms []models.FundRequest) []domain.FundRequest {
	ds := make([]domain.FundRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFundRequest(m)
	}
	return ds
}
