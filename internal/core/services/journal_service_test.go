package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/core/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), nextToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, params dto.ListLinesParams) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, organizationID, accountID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), nextToken, args.Error(2)
}

func (m *MockJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (string, error) {
	args := m.Called(ctx, entry, lines)
	return args.String(0), args.Error(1)
}

func (m *MockJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraftEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, approvedBy string, approvedAt time.Time, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entryID, approvedBy, approvedAt, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, originalEntryID string, reversing domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) (string, error) {
	args := m.Called(ctx, originalEntryID, reversing, lines, balanceChanges)
	return args.String(0), args.Error(1)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountHierarchy(ctx context.Context, organizationID string) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) ResolveBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock OrganizationAuthorizer ---
type MockOrganizationAuthorizer struct {
	mock.Mock
}

var _ portssvc.OrganizationAuthorizerSvc = (*MockOrganizationAuthorizer)(nil)

func (m *MockOrganizationAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	mockAuthorizer  *MockOrganizationAuthorizer
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	salesAccount    domain.Account
	payableAccount  domain.Account
	organizationID  string
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc,
		services.WithJournalOrganizationAuthorizer(suite.mockAuthorizer))

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "1001",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}
	suite.salesAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "4001",
		AccountType:    domain.Revenue,
		NormalBalance:  domain.CreditNormal,
		IsActive:       true,
	}
	suite.payableAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "2001",
		AccountType:    domain.Liability,
		NormalBalance:  domain.CreditNormal,
		IsActive:       true,
	}
}

func (suite *JournalServiceTestSuite) expectAuthorize(role domain.UserOrganizationRole, result error) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, role).Return(result).Once()
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountID] = a
	}
	return m
}

// balancedRequest debits cash and credits sales by the given amount.
func (suite *JournalServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Daily sales",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: amount},
			{AccountID: suite.salesAccount.AccountID, CreditAmount: amount},
		},
	}
}

// postedEntry builds a POSTED cash/sales entry owned by the suite's organization.
func (suite *JournalServiceTestSuite) postedEntry(amount decimal.Decimal) *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		EntryNumber:    "JE-000007",
		EntryDate:      time.Now().Add(-24 * time.Hour),
		Description:    "Daily sales",
		Status:         domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, LineNumber: 1, DebitAmount: amount},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.salesAccount.AccountID, LineNumber: 2, CreditAmount: amount},
		},
	}
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID,
		[]string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).
		Return("JE-000001", nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal("JE-000001", entry.EntryNumber)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)

	suite.mockAuthorizer.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	suite.expectAuthorize(domain.RoleMember, apperrors.ErrForbidden)

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, suite.balancedRequest(decimal.NewFromInt(100)), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Does not balance",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(90)},
		},
	}
	suite.expectAuthorize(domain.RoleMember, nil)

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinEpsilonBalances() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Penny rounding",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.RequireFromString("100.00")},
			{AccountID: suite.salesAccount.AccountID, CreditAmount: decimal.RequireFromString("99.99")},
		},
	}
	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.Anything, mock.Anything).Return("JE-000002", nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BlankDescription() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))
	req.Description = "   "

	suite.expectAuthorize(domain.RoleMember, nil)

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: "Bad line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(50), CreditAmount: decimal.NewFromInt(50)},
			{AccountID: suite.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(0)},
		},
	}
	suite.expectAuthorize(domain.RoleMember, nil)

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	// Sales account missing from the resolved map.
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.salesAccount
	inactive.IsActive = false
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, inactive), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetEntryByID ---

func (suite *JournalServiceTestSuite) TestGetEntryByID_WrongOrganization() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	entry.OrganizationID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.organizationID, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

// --- UpdateEntry / DeleteEntry ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedIsImmutable() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	newDesc := "amended"
	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, entry.EntryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_EmptyDescription() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	entry.Status = domain.Draft

	suite.expectAuthorize(domain.RoleMember, nil)

	empty := ""
	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, entry.EntryID, dto.UpdateJournalEntryRequest{Description: &empty}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_DraftSuccess() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	entry.Status = domain.Draft

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("DeleteDraftEntry", ctx, entry.EntryID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedFails() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrImmutableEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(250))
	entry.Status = domain.Draft

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	// Both accounts grow by 250 in their own normal balance terms. The
	// validated line set travels along so the repository can re-check it
	// under the entry row lock.
	suite.mockJournalRepo.On("PostEntry", ctx, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			return len(lines) == 2 &&
				lines[0].AccountID == suite.cashAccount.AccountID && lines[0].DebitAmount.Equal(decimal.NewFromInt(250)) &&
				lines[1].AccountID == suite.salesAccount.AccountID && lines[1].CreditAmount.Equal(decimal.NewFromInt(250))
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(250)) &&
				changes[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(250))
		})).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.ApprovedBy)
	suite.Equal(suite.userID, *posted.ApprovedBy)
	suite.NotNil(posted.ApprovedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_ConcurrentDraftUpdateConflict() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(250))
	entry.Status = domain.Draft

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	// The repository found a different line set under the row lock.
	suite.mockJournalRepo.On("PostEntry", ctx, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time"), entry.Lines, mock.Anything).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- ReverseEntry ---

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(300)
	original := suite.postedEntry(amount)

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(original.Lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.salesAccount), nil).Once()

	// The mirror undoes the original: both deltas are -300.
	suite.mockJournalRepo.On("ReverseEntry", ctx, original.EntryID,
		mock.MatchedBy(func(reversing domain.JournalEntry) bool {
			return reversing.Status == domain.Posted &&
				reversing.OriginalEntryID != nil && *reversing.OriginalEntryID == original.EntryID
		}),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			if len(lines) != 2 {
				return false
			}
			return lines[0].CreditAmount.Equal(amount) && lines[1].DebitAmount.Equal(amount)
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.cashAccount.AccountID].Equal(amount.Neg()) &&
				changes[suite.salesAccount.AccountID].Equal(amount.Neg())
		})).Return("JE-000008", nil).Once()

	reversing, err := suite.service.ReverseEntry(ctx, suite.organizationID, original.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JE-000008", reversing.EntryNumber)
	suite.Equal(domain.Posted, reversing.Status)
	suite.Equal(original.EntryNumber, reversing.Reference)
	suite.Contains(reversing.Description, "Reversal of "+original.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftFails() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	entry.Status = domain.Draft

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	entry.Status = domain.Reversed

	suite.expectAuthorize(domain.RoleMember, nil)
	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- ListEntries ---

func (suite *JournalServiceTestSuite) TestListEntries_IncludeLines() {
	ctx := context.Background()
	entry := suite.postedEntry(decimal.NewFromInt(100))
	params := dto.ListEntriesParams{Limit: 10, IncludeLines: true}

	suite.mockJournalRepo.On("ListEntries", ctx, suite.organizationID, params).
		Return([]domain.JournalEntry{{EntryID: entry.EntryID, OrganizationID: suite.organizationID}}, nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalLine{entry.EntryID: entry.Lines}, nil).Once()

	entries, nextToken, err := suite.service.ListEntries(ctx, suite.organizationID, params)

	suite.Require().NoError(err)
	suite.Nil(nextToken)
	suite.Require().Len(entries, 1)
	suite.Len(entries[0].Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
