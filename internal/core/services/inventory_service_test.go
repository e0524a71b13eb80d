package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	portssvc "github.com/retailnet/retail_network_app/internal/core/ports/services"
	"github.com/retailnet/retail_network_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

// Ensure MockInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindStockBalance(ctx context.Context, scopeID string, productID string) (*domain.StockBalance, error) {
	args := m.Called(ctx, scopeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockBalance), args.Error(1)
}

func (m *MockInventoryRepository) ListStockBalancesByScope(ctx context.Context, scopeID string) ([]domain.StockBalance, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockBalance), args.Error(1)
}

func (m *MockInventoryRepository) ListInventoryEntries(ctx context.Context, scopeID string, productID string, limit int, nextToken *string) ([]domain.InventoryLedgerEntry, *string, error) {
	args := m.Called(ctx, scopeID, productID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.InventoryLedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockInventoryRepository) FindStockBalanceForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string) (*domain.StockBalance, error) {
	args := m.Called(ctx, tx, scopeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockBalance), args.Error(1)
}

func (m *MockInventoryRepository) ApplyStockBalanceChangeInTx(ctx context.Context, tx pgx.Tx, scopeID string, productID string, qtyChange int64, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, scopeID, productID, qtyChange, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) SaveInventoryEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.InventoryLedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockInventoryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInventoryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInventoryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockInventoryRepository
	mockScope *MockScopeAuthorizer
	service   *services.InventoryService
	caller    domain.CallerContext
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	suite.mockScope = new(MockScopeAuthorizer)
	suite.service = services.NewInventoryService(suite.mockRepo, suite.mockScope)
	suite.caller = domain.CallerContext{UserID: uuid.NewString(), ScopeID: uuid.NewString()}
}

func (suite *InventoryServiceTestSuite) TestGetBalance_MissingRowReadsAsZero() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, scopeID).Return(nil).Once()
	suite.mockRepo.On("FindStockBalance", ctx, scopeID, productID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.GetBalance(ctx, suite.caller, scopeID, productID)

	suite.Require().NoError(err)
	suite.Require().NotNil(balance)
	suite.Equal(int64(0), balance.QtyOnHand)
	suite.Equal(scopeID, balance.ScopeID)
}

func (suite *InventoryServiceTestSuite) TestGetBalance_OutsideSubtreeForbidden() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, scopeID).Return(apperrors.ErrForbidden).Once()

	balance, err := suite.service.GetBalance(ctx, suite.caller, scopeID, productID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(balance)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindStockBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestMove_OutboundInsufficientStock() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	current := &domain.StockBalance{ScopeID: scopeID, ProductID: productID, QtyOnHand: 3}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindStockBalanceForUpdateInTx", ctx, nil, scopeID, productID).Return(current, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.Move(ctx, portssvc.MoveParams{
		ScopeID:     scopeID,
		ProductID:   productID,
		QtyChange:   -10,
		TxnType:     domain.TxnTransfer,
		RefType:     string(domain.RefStockRequest),
		RefID:       uuid.NewString(),
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.ErrorContains(err, "holds 3")
	suite.ErrorContains(err, "remove 10")
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyStockBalanceChangeInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestMove_InboundCreatesRowFromNothing() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()
	refID := uuid.NewString()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindStockBalanceForUpdateInTx", ctx, nil, scopeID, productID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ApplyStockBalanceChangeInTx", ctx, nil, scopeID, productID, int64(7), suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(int64(7), nil).Once()
	suite.mockRepo.On("SaveInventoryEntryInTx", ctx, nil, mock.MatchedBy(func(e domain.InventoryLedgerEntry) bool {
		return e.QtyChange == 7 && e.TxnType == domain.TxnTransfer && e.RefID == refID
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.Move(ctx, portssvc.MoveParams{
		ScopeID:       scopeID,
		ProductID:     productID,
		QtyChange:     7,
		TxnType:       domain.TxnTransfer,
		RefType:       string(domain.RefStockRequest),
		RefID:         refID,
		AllowNegative: true,
		ActorUserID:   suite.caller.UserID,
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestMove_FirstWriteAddsToConcurrentlyCommittedRow() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	// The read finds nothing, but another first writer commits 5 before the
	// write lands. The delta must add to that row, not replace it.
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindStockBalanceForUpdateInTx", ctx, nil, scopeID, productID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ApplyStockBalanceChangeInTx", ctx, nil, scopeID, productID, int64(3), suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(int64(8), nil).Once()
	suite.mockRepo.On("SaveInventoryEntryInTx", ctx, nil, mock.MatchedBy(func(e domain.InventoryLedgerEntry) bool {
		return e.QtyChange == 3
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.Move(ctx, portssvc.MoveParams{
		ScopeID:     scopeID,
		ProductID:   productID,
		QtyChange:   3,
		TxnType:     domain.TxnAdjustment,
		RefType:     "ADJUSTMENT",
		RefID:       "restock",
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestMove_AbsentRowOutboundRefusedAfterWrite() {
	ctx := context.Background()
	scopeID, productID := uuid.NewString(), uuid.NewString()

	// No row means no lock, so the refusal comes from the quantity the
	// write reports, inside the transaction that then rolls back.
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindStockBalanceForUpdateInTx", ctx, nil, scopeID, productID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ApplyStockBalanceChangeInTx", ctx, nil, scopeID, productID, int64(-5), suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(int64(-5), nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.Move(ctx, portssvc.MoveParams{
		ScopeID:     scopeID,
		ProductID:   productID,
		QtyChange:   -5,
		TxnType:     domain.TxnSale,
		RefType:     string(domain.RefSale),
		RefID:       uuid.NewString(),
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.ErrorContains(err, "holds 0")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInventoryEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestMove_ZeroChangeRefused() {
	ctx := context.Background()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	err := suite.service.Move(ctx, portssvc.MoveParams{
		ScopeID:     uuid.NewString(),
		ProductID:   uuid.NewString(),
		QtyChange:   0,
		TxnType:     domain.TxnAdjustment,
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestListBalancesByScope_Authorized() {
	ctx := context.Background()
	scopeID := uuid.NewString()
	balances := []domain.StockBalance{{ScopeID: scopeID, ProductID: uuid.NewString(), QtyOnHand: 12}}

	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, scopeID).Return(nil).Once()
	suite.mockRepo.On("ListStockBalancesByScope", ctx, scopeID).Return(balances, nil).Once()

	got, err := suite.service.ListBalancesByScope(ctx, suite.caller, scopeID)

	suite.Require().NoError(err)
	suite.Equal(balances, got)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
