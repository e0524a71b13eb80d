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
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

// Ensure MockWalletRepository implements portsrepo.WalletRepositoryWithTx
var _ portsrepo.WalletRepositoryWithTx = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByScopeAndType(ctx context.Context, scopeID string, walletType domain.WalletType) (*domain.Wallet, error) {
	args := m.Called(ctx, scopeID, walletType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByScope(ctx context.Context, scopeID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListLedgerEntriesByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, walletID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockWalletRepository) EnsureWalletsInTx(ctx context.Context, tx pgx.Tx, scopeID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, scopeID, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, tx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockWalletRepository) ApplyWalletBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockWalletRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ScopeAuthorizer ---
type MockScopeAuthorizer struct {
	mock.Mock
}

var _ portssvc.ScopeAuthorizerSvc = (*MockScopeAuthorizer)(nil)

func (m *MockScopeAuthorizer) AuthorizeScopeAction(ctx context.Context, caller domain.CallerContext, targetScopeID string) error {
	args := m.Called(ctx, caller, targetScopeID)
	return args.Error(0)
}

func (m *MockScopeAuthorizer) ValidateRequestPair(ctx context.Context, fromScopeID string, toScopeID string) error {
	args := m.Called(ctx, fromScopeID, toScopeID)
	return args.Error(0)
}

// --- Test Suite ---
type WalletServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockWalletRepository
	mockScope *MockScopeAuthorizer
	service   *services.WalletService
	caller    domain.CallerContext
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWalletRepository)
	suite.mockScope = new(MockScopeAuthorizer)
	suite.service = services.NewWalletService(suite.mockRepo, suite.mockScope)
	suite.caller = domain.CallerContext{UserID: uuid.NewString(), ScopeID: uuid.NewString()}
}

func (suite *WalletServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	fromID, toID := uuid.NewString(), uuid.NewString()
	amount := decimal.NewFromInt(250)

	wallets := map[string]domain.Wallet{
		fromID: {WalletID: fromID, Balance: decimal.NewFromInt(1000)},
		toID:   {WalletID: toID, Balance: decimal.Zero},
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsByIDsForUpdate", ctx, nil, []string{toID, fromID}).Return(wallets, nil).Once()
	suite.mockRepo.On("SaveLedgerEntryInTx", ctx, nil, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return *e.FromWalletID == fromID && *e.ToWalletID == toID && e.Amount.Equal(amount)
	})).Return(nil).Once()
	suite.mockRepo.On("ApplyWalletBalanceChangesInTx", ctx, nil, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[fromID].Equal(amount.Neg()) && changes[toID].Equal(amount)
	}), suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, portssvc.TransferParams{
		FromWalletID: &fromID,
		ToWalletID:   toID,
		Amount:       amount,
		RefType:      domain.RefFundRequest,
		RefID:        uuid.NewString(),
		ActorUserID:  suite.caller.UserID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(amount, entry.Amount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_InsufficientBalance() {
	ctx := context.Background()
	fromID, toID := uuid.NewString(), uuid.NewString()

	wallets := map[string]domain.Wallet{
		fromID: {WalletID: fromID, Balance: decimal.NewFromInt(40)},
		toID:   {WalletID: toID, Balance: decimal.Zero},
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsByIDsForUpdate", ctx, nil, []string{toID, fromID}).Return(wallets, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, portssvc.TransferParams{
		FromWalletID: &fromID,
		ToWalletID:   toID,
		Amount:       decimal.NewFromInt(100),
		RefType:      domain.RefFundRequest,
		RefID:        uuid.NewString(),
		ActorUserID:  suite.caller.UserID,
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.ErrorContains(err, "40")
	suite.ErrorContains(err, "100")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()
	toID := uuid.NewString()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, portssvc.TransferParams{
		ToWalletID:  toID,
		Amount:      decimal.Zero,
		RefType:     domain.RefSeed,
		RefID:       uuid.NewString(),
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WalletServiceTestSuite) TestTransfer_ExternalSeedHasNoSource() {
	ctx := context.Background()
	toID := uuid.NewString()
	amount := decimal.NewFromInt(5000)

	wallets := map[string]domain.Wallet{
		toID: {WalletID: toID, Balance: decimal.Zero},
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsByIDsForUpdate", ctx, nil, []string{toID}).Return(wallets, nil).Once()
	suite.mockRepo.On("SaveLedgerEntryInTx", ctx, nil, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.FromWalletID == nil && *e.ToWalletID == toID && e.RefType == domain.RefSeed
	})).Return(nil).Once()
	suite.mockRepo.On("ApplyWalletBalanceChangesInTx", ctx, nil, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[toID].Equal(amount)
	}), suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	entry, err := suite.service.Transfer(ctx, portssvc.TransferParams{
		ToWalletID:  toID,
		Amount:      amount,
		RefType:     domain.RefSeed,
		RefID:       uuid.NewString(),
		ActorUserID: suite.caller.UserID,
	})

	suite.Require().NoError(err)
	suite.Nil(entry.FromWalletID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWallet_CreatesWhenAbsent() {
	ctx := context.Background()
	scopeID := uuid.NewString()
	wallet := &domain.Wallet{WalletID: uuid.NewString(), ScopeID: scopeID, Type: domain.WalletFund}

	suite.mockRepo.On("FindWalletByScopeAndType", ctx, scopeID, domain.WalletFund).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("EnsureWalletsInTx", ctx, nil, scopeID, suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("FindWalletByScopeAndType", ctx, scopeID, domain.WalletFund).Return(wallet, nil).Once()

	got, err := suite.service.GetOrCreateWallet(ctx, scopeID, domain.WalletFund, suite.caller.UserID)

	suite.Require().NoError(err)
	suite.Equal(wallet, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestListLedgerEntries_ForbiddenScope() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := &domain.Wallet{WalletID: walletID, ScopeID: uuid.NewString()}

	suite.mockRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, wallet.ScopeID).Return(apperrors.ErrForbidden).Once()

	entries, token, err := suite.service.ListLedgerEntries(ctx, suite.caller, walletID, dto.ListParams{Limit: 10})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(entries)
	suite.Nil(token)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListLedgerEntriesByWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_OwnerSubtreeAllowed() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := &domain.Wallet{WalletID: walletID, ScopeID: uuid.NewString(), Type: domain.WalletFund}

	suite.mockRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, wallet.ScopeID).Return(nil).Once()

	got, err := suite.service.GetWalletByID(ctx, suite.caller, walletID)

	suite.Require().NoError(err)
	suite.Equal(wallet, got)
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_OutsideSubtreeForbidden() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := &domain.Wallet{WalletID: walletID, ScopeID: uuid.NewString(), Type: domain.WalletIncome}

	suite.mockRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, wallet.ScopeID).Return(apperrors.ErrForbidden).Once()

	got, err := suite.service.GetWalletByID(ctx, suite.caller, walletID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
