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

// --- Mock FundRequestRepository ---
type MockFundRequestRepository struct {
	mock.Mock
}

// Ensure MockFundRequestRepository implements portsrepo.FundRequestRepositoryWithTx
var _ portsrepo.FundRequestRepositoryWithTx = (*MockFundRequestRepository)(nil)

func (m *MockFundRequestRepository) FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundRequest), args.Error(1)
}

func (m *MockFundRequestRepository) ListAsRequester(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error) {
	args := m.Called(ctx, scopeID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.FundRequest), returnedNextToken, args.Error(2)
}

func (m *MockFundRequestRepository) ListAsFunder(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.FundRequest, *string, error) {
	args := m.Called(ctx, scopeID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.FundRequest), returnedNextToken, args.Error(2)
}

func (m *MockFundRequestRepository) SaveFundRequest(ctx context.Context, request domain.FundRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockFundRequestRepository) MarkProcessed(ctx context.Context, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error {
	args := m.Called(ctx, requestID, status, rejectionReason, processedAt, userID)
	return args.Error(0)
}

func (m *MockFundRequestRepository) FindFundRequestForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*domain.FundRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundRequest), args.Error(1)
}

func (m *MockFundRequestRepository) MarkProcessedInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.FundRequestStatus, rejectionReason *string, processedAt time.Time, userID string) error {
	args := m.Called(ctx, tx, requestID, status, rejectionReason, processedAt, userID)
	return args.Error(0)
}

func (m *MockFundRequestRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockFundRequestRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFundRequestRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type FundRequestServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockFundRequestRepository
	mockScope  *MockScopeService
	mockWallet *MockWalletEngine
	service    *services.FundRequestService
	caller     domain.CallerContext
}

func (suite *FundRequestServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFundRequestRepository)
	suite.mockScope = new(MockScopeService)
	suite.mockWallet = new(MockWalletEngine)
	suite.service = services.NewFundRequestService(suite.mockRepo, suite.mockScope, suite.mockWallet)
	suite.caller = domain.CallerContext{UserID: uuid.NewString(), ScopeID: uuid.NewString()}
}

func (suite *FundRequestServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	funderScopeID := uuid.NewString()

	req := dto.CreateFundRequestRequest{ToScopeID: funderScopeID, Amount: decimal.NewFromInt(500), Notes: "restock budget"}

	suite.mockScope.On("GetScopeByID", ctx, funderScopeID).Return(&domain.ScopeNode{ScopeID: funderScopeID, IsActive: true}, nil).Once()
	suite.mockScope.On("IsAncestorOrSelf", ctx, funderScopeID, suite.caller.ScopeID).Return(true, nil).Once()
	suite.mockRepo.On("SaveFundRequest", ctx, mock.MatchedBy(func(r domain.FundRequest) bool {
		return r.Status == domain.FundPending &&
			r.FromScopeID == suite.caller.ScopeID &&
			r.ToScopeID == funderScopeID &&
			r.Amount.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	created, err := suite.service.Create(ctx, req, suite.caller)

	suite.Require().NoError(err)
	suite.Equal(domain.FundPending, created.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FundRequestServiceTestSuite) TestCreate_NonAncestorFunderRefused() {
	ctx := context.Background()
	peerScopeID := uuid.NewString()

	req := dto.CreateFundRequestRequest{ToScopeID: peerScopeID, Amount: decimal.NewFromInt(100)}

	suite.mockScope.On("GetScopeByID", ctx, peerScopeID).Return(&domain.ScopeNode{ScopeID: peerScopeID, IsActive: true}, nil).Once()
	suite.mockScope.On("IsAncestorOrSelf", ctx, peerScopeID, suite.caller.ScopeID).Return(false, nil).Once()

	_, err := suite.service.Create(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveFundRequest", mock.Anything, mock.Anything)
}

func (suite *FundRequestServiceTestSuite) TestCreate_NonPositiveAmountRefused() {
	ctx := context.Background()

	req := dto.CreateFundRequestRequest{ToScopeID: uuid.NewString(), Amount: decimal.Zero}

	_, err := suite.service.Create(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FundRequestServiceTestSuite) TestApprove_Success() {
	ctx := context.Background()
	requestID := uuid.NewString()
	requesterScopeID, funderScopeID := uuid.NewString(), uuid.NewString()
	amount := decimal.NewFromInt(750)

	pending := &domain.FundRequest{
		RequestID: requestID, FromScopeID: requesterScopeID, ToScopeID: funderScopeID,
		Amount: amount, Status: domain.FundPending,
	}
	approved := &domain.FundRequest{
		RequestID: requestID, FromScopeID: requesterScopeID, ToScopeID: funderScopeID,
		Amount: amount, Status: domain.FundApproved,
	}
	funderWallet := &domain.Wallet{WalletID: uuid.NewString(), ScopeID: funderScopeID, Type: domain.WalletFund}
	requesterWallet := &domain.Wallet{WalletID: uuid.NewString(), ScopeID: requesterScopeID, Type: domain.WalletFund}

	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, funderScopeID).Return(nil).Once()
	suite.mockWallet.On("GetOrCreateWallet", ctx, funderScopeID, domain.WalletFund, suite.caller.UserID).Return(funderWallet, nil).Once()
	suite.mockWallet.On("GetOrCreateWallet", ctx, requesterScopeID, domain.WalletFund, suite.caller.UserID).Return(requesterWallet, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindFundRequestForUpdateInTx", ctx, nil, requestID).Return(pending, nil).Once()
	suite.mockWallet.On("TransferInTx", ctx, nil, mock.MatchedBy(func(p portssvc.TransferParams) bool {
		return p.FromWalletID != nil && *p.FromWalletID == funderWallet.WalletID &&
			p.ToWalletID == requesterWallet.WalletID &&
			p.Amount.Equal(amount) &&
			p.RefType == domain.RefFundRequest && p.RefID == requestID
	})).Return(&domain.LedgerEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.mockRepo.On("MarkProcessedInTx", ctx, nil, requestID, domain.FundApproved,
		(*string)(nil), mock.AnythingOfType("time.Time"), suite.caller.UserID).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()
	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(approved, nil).Once()

	got, err := suite.service.Approve(ctx, requestID, suite.caller)

	suite.Require().NoError(err)
	suite.Equal(domain.FundApproved, got.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *FundRequestServiceTestSuite) TestApprove_InsufficientFundsLeavesPending() {
	ctx := context.Background()
	requestID := uuid.NewString()
	requesterScopeID, funderScopeID := uuid.NewString(), uuid.NewString()

	pending := &domain.FundRequest{
		RequestID: requestID, FromScopeID: requesterScopeID, ToScopeID: funderScopeID,
		Amount: decimal.NewFromInt(9000), Status: domain.FundPending,
	}
	funderWallet := &domain.Wallet{WalletID: uuid.NewString(), ScopeID: funderScopeID, Type: domain.WalletFund}
	requesterWallet := &domain.Wallet{WalletID: uuid.NewString(), ScopeID: requesterScopeID, Type: domain.WalletFund}

	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, funderScopeID).Return(nil).Once()
	suite.mockWallet.On("GetOrCreateWallet", ctx, funderScopeID, domain.WalletFund, suite.caller.UserID).Return(funderWallet, nil).Once()
	suite.mockWallet.On("GetOrCreateWallet", ctx, requesterScopeID, domain.WalletFund, suite.caller.UserID).Return(requesterWallet, nil).Once()
	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindFundRequestForUpdateInTx", ctx, nil, requestID).Return(pending, nil).Once()
	suite.mockWallet.On("TransferInTx", ctx, nil, mock.Anything).Return(nil, apperrors.ErrInsufficientBalance).Once()
	suite.mockRepo.On("Rollback", ctx, nil).Return(nil).Once()

	_, err := suite.service.Approve(ctx, requestID, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkProcessedInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *FundRequestServiceTestSuite) TestApprove_AlreadyProcessedRefused() {
	ctx := context.Background()
	requestID := uuid.NewString()
	funderScopeID := uuid.NewString()

	rejected := &domain.FundRequest{
		RequestID: requestID, FromScopeID: uuid.NewString(), ToScopeID: funderScopeID,
		Amount: decimal.NewFromInt(100), Status: domain.FundRejected,
	}

	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(rejected, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, funderScopeID).Return(nil).Once()

	_, err := suite.service.Approve(ctx, requestID, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *FundRequestServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	requestID := uuid.NewString()
	funderScopeID := uuid.NewString()
	reason := "budget frozen for the quarter"

	pending := &domain.FundRequest{
		RequestID: requestID, FromScopeID: uuid.NewString(), ToScopeID: funderScopeID,
		Amount: decimal.NewFromInt(100), Status: domain.FundPending,
	}
	rejected := &domain.FundRequest{
		RequestID: requestID, FromScopeID: pending.FromScopeID, ToScopeID: funderScopeID,
		Amount: pending.Amount, Status: domain.FundRejected, RejectionReason: reason,
	}

	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(pending, nil).Once()
	suite.mockScope.On("AuthorizeScopeAction", ctx, suite.caller, funderScopeID).Return(nil).Once()
	suite.mockRepo.On("MarkProcessed", ctx, requestID, domain.FundRejected, &reason,
		mock.AnythingOfType("time.Time"), suite.caller.UserID).Return(nil).Once()
	suite.mockRepo.On("FindFundRequestByID", ctx, requestID).Return(rejected, nil).Once()

	got, err := suite.service.Reject(ctx, requestID, reason, suite.caller)

	suite.Require().NoError(err)
	suite.Equal(domain.FundRejected, got.Status)
	suite.mockWallet.AssertNotCalled(suite.T(), "TransferInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FundRequestServiceTestSuite) TestReject_RequiresReason() {
	ctx := context.Background()

	_, err := suite.service.Reject(ctx, uuid.NewString(), "", suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindFundRequestByID", mock.Anything, mock.Anything)
}

func TestFundRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FundRequestServiceTestSuite))
}
