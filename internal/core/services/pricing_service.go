package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/retailnet/retail_network_app/internal/apperrors"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// PricingService resolves the unit price charged for a (scope, product) pair:
// the scope override if one exists, else the product default.
type PricingService struct {
	ProductRepository portsrepo.ProductRepositoryFacade
}

func NewPricingService(repo portsrepo.ProductRepositoryFacade) *PricingService {
	return &PricingService{ProductRepository: repo}
}

// EffectiveUnitPrice returns the scope-specific override if present, else the
// product's default sale price. A vanished product resolves to zero so that
// historical fulfillments do not hard-fail; the case is logged as anomalous.
func (s *PricingService) EffectiveUnitPrice(ctx context.Context, scopeID string, productID string) (decimal.Decimal, error) {
	override, err := s.ProductRepository.FindScopePrice(ctx, scopeID, productID)
	if err == nil {
		return override.UnitPrice, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	product, err := s.ProductRepository.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Pricing fell through to zero for unknown product",
				slog.String("scope_id", scopeID),
				slog.String("product_id", productID),
			)
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return product.DefaultSalePrice, nil
}
