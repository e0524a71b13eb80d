package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/retailnet/retail_network_app/internal/middleware"
)

type ProductService struct {
	ProductRepository portsrepo.ProductRepositoryFacade
	ScopeSvc          portssvc.ScopeSvcFacade
}

func NewProductService(repo portsrepo.ProductRepositoryFacade, scopeSvc portssvc.ScopeSvcFacade) *ProductService {
	return &ProductService{ProductRepository: repo, ScopeSvc: scopeSvc}
}

// CreateProduct persists a new catalog product. Only users acting for the
// COMPANY root of the owning company may create products.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, caller domain.CallerContext) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	callerScope, err := s.ScopeSvc.GetScopeByID(ctx, caller.ScopeID)
	if err != nil {
		return nil, err
	}
	if callerScope.Level != domain.LevelCompany || callerScope.CompanyID != req.CompanyID {
		return nil, fmt.Errorf("%w: only the company root may manage the catalog", apperrors.ErrForbidden)
	}

	if req.DefaultSalePrice.IsNegative() || req.GSTPercent.IsNegative() {
		return nil, fmt.Errorf("%w: prices and GST percent must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:        uuid.NewString(),
		CompanyID:        req.CompanyID,
		Name:             req.Name,
		SKU:              req.SKU,
		DefaultSalePrice: req.DefaultSalePrice,
		GSTPercent:       req.GSTPercent,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}

	if err := s.ProductRepository.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("product_id", product.ProductID))
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

// GetProductByID retrieves a product.
func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.ProductRepository.FindProductByID(ctx, productID)
}

// GetProductsByIDs retrieves multiple products by their IDs.
func (s *ProductService) GetProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	return s.ProductRepository.FindProductsByIDs(ctx, productIDs)
}

// ListProducts retrieves a paginated product listing for a company.
func (s *ProductService) ListProducts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Product, error) {
	return s.ProductRepository.ListProducts(ctx, companyID, limit, offset)
}

// SetScopePrice creates or replaces a per-scope price override.
func (s *ProductService) SetScopePrice(ctx context.Context, scopeID string, productID string, req dto.SetScopePriceRequest, caller domain.CallerContext) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	product, err := s.ProductRepository.FindProductByID(ctx, productID)
	if err != nil {
		return err
	}
	scope, err := s.ScopeSvc.GetScopeByID(ctx, scopeID)
	if err != nil {
		return err
	}
	if scope.CompanyID != product.CompanyID {
		return fmt.Errorf("%w: scope and product belong to different companies", apperrors.ErrValidation)
	}
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	price := domain.ScopePrice{
		ScopeID:   scopeID,
		ProductID: productID,
		UnitPrice: req.UnitPrice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	if err := s.ProductRepository.UpsertScopePrice(ctx, price); err != nil {
		logger.Error("Failed to upsert scope price", slog.String("error", err.Error()), slog.String("scope_id", scopeID), slog.String("product_id", productID))
		return err
	}

	logger.Info("Scope price set", slog.String("scope_id", scopeID), slog.String("product_id", productID), slog.String("unit_price", req.UnitPrice.String()))
	return nil
}

// RemoveScopePrice removes a per-scope price override.
func (s *ProductService) RemoveScopePrice(ctx context.Context, scopeID string, productID string, caller domain.CallerContext) error {
	if err := s.ScopeSvc.AuthorizeScopeAction(ctx, caller, scopeID); err != nil {
		return err
	}
	if err := s.ProductRepository.DeleteScopePrice(ctx, scopeID, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to delete scope price", slog.String("error", err.Error()), slog.String("scope_id", scopeID), slog.String("product_id", productID))
		}
		return err
	}
	return nil
}
