package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/retail_network_app/internal/apperrors"
	"github.com/retailnet/retail_network_app/internal/core/domain"
	portsrepo "github.com/retailnet/retail_network_app/internal/core/ports/repositories"
	"github.com/retailnet/retail_network_app/internal/core/services"
	"github.com/retailnet/retail_network_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ScopeRepository ---
type MockScopeRepository struct {
	mock.Mock
}

// Ensure MockScopeRepository implements portsrepo.ScopeRepositoryFacade
var _ portsrepo.ScopeRepositoryFacade = (*MockScopeRepository)(nil)

func (m *MockScopeRepository) FindScopeByID(ctx context.Context, scopeID string) (*domain.ScopeNode, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScopeNode), args.Error(1)
}

func (m *MockScopeRepository) FindScopesByIDs(ctx context.Context, scopeIDs []string) (map[string]domain.ScopeNode, error) {
	args := m.Called(ctx, scopeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ScopeNode), args.Error(1)
}

func (m *MockScopeRepository) FindAncestorIDs(ctx context.Context, scopeID string) ([]string, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockScopeRepository) FindCompanyRoot(ctx context.Context, companyID string) (*domain.ScopeNode, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScopeNode), args.Error(1)
}

func (m *MockScopeRepository) ListChildren(ctx context.Context, scopeID string) ([]domain.ScopeNode, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScopeNode), args.Error(1)
}

func (m *MockScopeRepository) CountActiveChildren(ctx context.Context, scopeID string) (int, error) {
	args := m.Called(ctx, scopeID)
	return args.Int(0), args.Error(1)
}

func (m *MockScopeRepository) SaveScope(ctx context.Context, scope domain.ScopeNode) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}

func (m *MockScopeRepository) DeactivateScope(ctx context.Context, scopeID string, userID string, now time.Time) error {
	args := m.Called(ctx, scopeID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type ScopeServiceTestSuite struct {
	suite.Suite
	mockRepo *MockScopeRepository
	service  *services.ScopeService
	caller   domain.CallerContext
}

func (suite *ScopeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockScopeRepository)
	suite.service = services.NewScopeService(suite.mockRepo)
	suite.caller = domain.CallerContext{UserID: uuid.NewString(), ScopeID: uuid.NewString()}
}

func (suite *ScopeServiceTestSuite) TestCreateScope_StateUnderCompany() {
	ctx := context.Background()
	parentID := suite.caller.ScopeID
	req := dto.CreateScopeRequest{
		CompanyID: "comp-1",
		Name:      "Karnataka",
		Level:     domain.LevelState,
		ParentID:  &parentID,
	}

	parent := &domain.ScopeNode{
		ScopeID:   parentID,
		CompanyID: "comp-1",
		Level:     domain.LevelCompany,
		IsActive:  true,
	}
	suite.mockRepo.On("FindScopeByID", ctx, parentID).Return(parent, nil).Once()
	suite.mockRepo.On("FindAncestorIDs", ctx, parentID).Return([]string{parentID}, nil).Once()
	suite.mockRepo.On("SaveScope", ctx, mock.MatchedBy(func(s domain.ScopeNode) bool {
		return s.Level == domain.LevelState && s.CompanyID == "comp-1" && *s.ParentID == parentID && s.IsActive
	})).Return(nil).Once()

	scope, err := suite.service.CreateScope(ctx, req, suite.caller)

	suite.Require().NoError(err)
	suite.Require().NotNil(scope)
	suite.Equal(domain.LevelState, scope.Level)
	suite.Equal(suite.caller.UserID, scope.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScopeServiceTestSuite) TestCreateScope_InvalidChildLevel() {
	ctx := context.Background()
	parentID := suite.caller.ScopeID
	req := dto.CreateScopeRequest{
		CompanyID: "comp-1",
		Name:      "Bad District",
		Level:     domain.LevelDistrict,
		ParentID:  &parentID,
	}

	// DISTRICT directly under COMPANY is not allowed.
	parent := &domain.ScopeNode{
		ScopeID:   parentID,
		CompanyID: "comp-1",
		Level:     domain.LevelCompany,
		IsActive:  true,
	}
	suite.mockRepo.On("FindScopeByID", ctx, parentID).Return(parent, nil).Once()

	scope, err := suite.service.CreateScope(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.Nil(scope)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ScopeServiceTestSuite) TestCreateScope_InactiveParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateScopeRequest{
		CompanyID: "comp-1",
		Name:      "Orphan",
		Level:     domain.LevelLocal,
		ParentID:  &parentID,
	}

	parent := &domain.ScopeNode{
		ScopeID:   parentID,
		CompanyID: "comp-1",
		Level:     domain.LevelDistrict,
		IsActive:  false,
	}
	suite.mockRepo.On("FindScopeByID", ctx, parentID).Return(parent, nil).Once()

	scope, err := suite.service.CreateScope(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.Nil(scope)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ScopeServiceTestSuite) TestCreateScope_SecondCompanyRootRefused() {
	ctx := context.Background()
	req := dto.CreateScopeRequest{
		CompanyID: "comp-1",
		Name:      "Second Root",
		Level:     domain.LevelCompany,
	}

	existing := &domain.ScopeNode{ScopeID: uuid.NewString(), CompanyID: "comp-1", Level: domain.LevelCompany}
	suite.mockRepo.On("FindCompanyRoot", ctx, "comp-1").Return(existing, nil).Once()

	scope, err := suite.service.CreateScope(ctx, req, suite.caller)

	suite.Require().Error(err)
	suite.Nil(scope)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ScopeServiceTestSuite) TestAuthorizeScopeAction_AncestorAllowed() {
	ctx := context.Background()
	target := uuid.NewString()
	chain := []string{target, uuid.NewString(), suite.caller.ScopeID}
	suite.mockRepo.On("FindAncestorIDs", ctx, target).Return(chain, nil).Once()

	err := suite.service.AuthorizeScopeAction(ctx, suite.caller, target)

	suite.NoError(err)
}

func (suite *ScopeServiceTestSuite) TestAuthorizeScopeAction_OutsideSubtreeForbidden() {
	ctx := context.Background()
	target := uuid.NewString()
	chain := []string{target, uuid.NewString(), uuid.NewString()}
	suite.mockRepo.On("FindAncestorIDs", ctx, target).Return(chain, nil).Once()

	err := suite.service.AuthorizeScopeAction(ctx, suite.caller, target)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ScopeServiceTestSuite) TestValidateRequestPair_LocalToDistrict() {
	ctx := context.Background()
	fromID, toID := uuid.NewString(), uuid.NewString()

	scopes := map[string]domain.ScopeNode{
		fromID: {ScopeID: fromID, Level: domain.LevelLocal, IsActive: true},
		toID:   {ScopeID: toID, Level: domain.LevelDistrict, IsActive: true},
	}
	suite.mockRepo.On("FindScopesByIDs", ctx, []string{fromID, toID}).Return(scopes, nil).Once()
	suite.mockRepo.On("FindAncestorIDs", ctx, fromID).Return([]string{fromID, toID, uuid.NewString()}, nil).Once()

	err := suite.service.ValidateRequestPair(ctx, fromID, toID)

	suite.NoError(err)
}

func (suite *ScopeServiceTestSuite) TestValidateRequestPair_PeerScopeRefused() {
	ctx := context.Background()
	fromID, toID := uuid.NewString(), uuid.NewString()

	// Valid level pairing but the supplier is not on the requester's
	// ancestor chain.
	scopes := map[string]domain.ScopeNode{
		fromID: {ScopeID: fromID, Level: domain.LevelLocal, IsActive: true},
		toID:   {ScopeID: toID, Level: domain.LevelDistrict, IsActive: true},
	}
	suite.mockRepo.On("FindScopesByIDs", ctx, []string{fromID, toID}).Return(scopes, nil).Once()
	suite.mockRepo.On("FindAncestorIDs", ctx, fromID).Return([]string{fromID, uuid.NewString(), uuid.NewString()}, nil).Once()

	err := suite.service.ValidateRequestPair(ctx, fromID, toID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *ScopeServiceTestSuite) TestValidateRequestPair_DownwardRefused() {
	ctx := context.Background()
	fromID, toID := uuid.NewString(), uuid.NewString()

	// COMPANY never requests from STATE.
	scopes := map[string]domain.ScopeNode{
		fromID: {ScopeID: fromID, Level: domain.LevelCompany, IsActive: true},
		toID:   {ScopeID: toID, Level: domain.LevelState, IsActive: true},
	}
	suite.mockRepo.On("FindScopesByIDs", ctx, []string{fromID, toID}).Return(scopes, nil).Once()

	err := suite.service.ValidateRequestPair(ctx, fromID, toID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *ScopeServiceTestSuite) TestValidateRequestPair_SelfRefused() {
	ctx := context.Background()
	id := uuid.NewString()

	err := suite.service.ValidateRequestPair(ctx, id, id)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidHierarchy)
}

func (suite *ScopeServiceTestSuite) TestDeactivateScope_BlockedByActiveChildren() {
	ctx := context.Background()
	target := uuid.NewString()
	suite.mockRepo.On("FindAncestorIDs", ctx, target).Return([]string{target, suite.caller.ScopeID}, nil).Once()
	suite.mockRepo.On("CountActiveChildren", ctx, target).Return(2, nil).Once()

	err := suite.service.DeactivateScope(ctx, target, suite.caller)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ScopeServiceTestSuite) TestDeactivateScope_Success() {
	ctx := context.Background()
	target := uuid.NewString()
	suite.mockRepo.On("FindAncestorIDs", ctx, target).Return([]string{target, suite.caller.ScopeID}, nil).Once()
	suite.mockRepo.On("CountActiveChildren", ctx, target).Return(0, nil).Once()
	suite.mockRepo.On("DeactivateScope", ctx, target, suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateScope(ctx, target, suite.caller)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestScopeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScopeServiceTestSuite))
}
