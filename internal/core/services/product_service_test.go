package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	"github.com/retailnet/retail_network_app/internal/core/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockProductRepository
	mockScope *MockScopeService
	service   *services.ProductService
	caller    domain.CallerContext
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.mockScope = new(MockScopeService)
	suite.service = services.NewProductService(suite.mockRepo, suite.mockScope)
	suite.caller = domain.CallerContext{UserID: uuid.NewString(), ScopeID: uuid.NewString()}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_CompanyRootOnly() {
	ctx := context.Background()
	companyID := uuid.NewString()

	districtScope := &domain.ScopeNode{ScopeID: suite.caller.ScopeID, CompanyID: companyID, Level: domain.LevelDistrict, IsActive: true}
	suite.mockScope.On("GetScopeByID", ctx, suite.caller.ScopeID).Return(districtScope, nil).Once()

	req := dto.CreateProductRequest{CompanyID: companyID, Name: "Widget", SKU: "W-1", DefaultSalePrice: decimal.NewFromInt(10)}
	_, err := suite.service.CreateProduct(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()

	rootScope := &domain.ScopeNode{ScopeID: suite.caller.ScopeID, CompanyID: companyID, Level: domain.LevelCompany, IsActive: true}
	suite.mockScope.On("GetScopeByID", ctx, suite.caller.ScopeID).Return(rootScope, nil).Once()
	suite.mockRepo.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.CompanyID == companyID && p.SKU == "W-1" && p.IsActive
	})).Return(nil).Once()

	req := dto.CreateProductRequest{CompanyID: companyID, Name: "Widget", SKU: "W-1", DefaultSalePrice: decimal.NewFromInt(10), GSTPercent: decimal.NewFromInt(18)}
	product, err := suite.service.CreateProduct(ctx, req, suite.caller)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestSetScopePrice_CrossCompanyRefused() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	product := &domain.Product{ProductID: productID, CompanyID: uuid.NewString()}
	scope := &domain.ScopeNode{ScopeID: scopeID, CompanyID: uuid.NewString(), IsActive: true}

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockScope.On("GetScopeByID", ctx, scopeID).Return(scope, nil).Once()

	err := suite.service.SetScopePrice(ctx, scopeID, productID, dto.SetScopePriceRequest{UnitPrice: decimal.NewFromInt(5)}, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertScopePrice", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestSetScopePrice_Success() {
	ctx := context.Background()
	companyID := uuid.NewString()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	product := &domain.Product{ProductID: productID, CompanyID: companyID}
	scope := &domain.ScopeNode{ScopeID: scopeID, CompanyID: companyID, IsActive: true}

	suite.mockRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockScope.On("GetScopeByID", ctx, scopeID).Return(scope, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, scopeID).Return(nil).Once()
	suite.mockRepo.On("UpsertScopePrice", ctx, mock.MatchedBy(func(p domain.ScopePrice) bool {
		return p.ScopeID == scopeID && p.ProductID == productID && p.UnitPrice.Equal(decimal.NewFromInt(5))
	})).Return(nil).Once()

	err := suite.service.SetScopePrice(ctx, scopeID, productID, dto.SetScopePriceRequest{UnitPrice: decimal.NewFromInt(5)}, suite.caller)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
