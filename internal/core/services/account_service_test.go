package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivityAsOf(ctx context.Context, organizationID string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountActivityForPeriod(ctx context.Context, organizationID string, fromDate, toDate time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, organizationID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountBalanceAsOf(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockOrganizationAuthorizer
	service           portssvc.AccountSvcFacade
	organizationID    string
	userID            string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewAccountService(suite.mockAccountRepo,
		services.WithAccountOrganizationAuthorizer(suite.mockAuthorizer),
		services.WithReportingRepository(suite.mockReportingRepo),
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) account(accountType domain.AccountType, code string) domain.Account {
	return domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           code,
		Name:           "Account " + code,
		AccountType:    accountType,
		NormalBalance:  domain.DefaultNormalBalance(accountType),
		IsActive:       true,
		Balance:        decimal.Zero,
	}
}

func (suite *AccountServiceTestSuite) authorizeMember() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultNormalBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "5001", Name: "Rent", AccountType: "EXPENSE"}

	suite.authorizeMember()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, account.AccountType)
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitNormalBalance() {
	ctx := context.Background()
	// A contra-asset keeps a CREDIT normal balance despite the ASSET type.
	req := dto.CreateAccountRequest{Code: "1099", Name: "Accumulated Depreciation", AccountType: "ASSET", NormalBalance: "CREDIT"}

	suite.authorizeMember()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNormal, account.NormalBalance)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: "ASSET"}

	suite.authorizeMember()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicateCode).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := suite.account(domain.Revenue, "4000")
	req := dto.CreateAccountRequest{Code: "1002", Name: "Register", AccountType: "ASSET", ParentAccountID: &parent.AccountID}

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentMissing() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1002", Name: "Register", AccountType: "ASSET", ParentAccountID: &missingID}

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

// --- GetAccountByID ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongOrganization() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	account.OrganizationID = uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.organizationID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetAccountHierarchy ---

func (suite *AccountServiceTestSuite) TestGetAccountHierarchy() {
	ctx := context.Background()
	root := suite.account(domain.Asset, "1000")
	child := suite.account(domain.Asset, "1001")
	child.ParentAccountID = root.AccountID
	other := suite.account(domain.Revenue, "4000")

	suite.mockAccountRepo.On("ListAllAccounts", ctx, suite.organizationID).
		Return([]domain.Account{root, child, other}, nil).Once()

	roots, err := suite.service.GetAccountHierarchy(ctx, suite.organizationID)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 2)
	suite.Equal("1000", roots[0].Code)
	suite.Equal("4000", roots[1].Code)
	suite.Require().Len(roots[0].Children, 1)
	suite.Equal("1001", roots[0].Children[0].Code)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeLockedByPostedActivity() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	newType := "EXPENSE"

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, account.AccountID).Return(true, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.organizationID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountTypeLocked)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeFollowsDefaultBalance() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	newType := "REVENUE"

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.Revenue && a.NormalBalance == domain.CreditNormal
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.organizationID, account.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Revenue, updated.AccountType)
	suite.Equal(domain.CreditNormal, updated.NormalBalance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_SelfParent() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.organizationID, account.AccountID, dto.UpdateAccountRequest{ParentAccountID: &account.AccountID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ParentCycle() {
	ctx := context.Background()
	// grandparent <- parent <- account; reparenting grandparent under account
	// would close the loop.
	account := suite.account(domain.Asset, "1000")
	parent := suite.account(domain.Asset, "1100")
	parent.ParentAccountID = account.AccountID

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.organizationID, account.AccountID, dto.UpdateAccountRequest{ParentAccountID: &parent.AccountID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

// --- DeactivateAccount ---

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalance() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	account.Balance = decimal.NewFromInt(42)

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	account.IsActive = false

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")

	suite.authorizeMember()
	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- ResolveBalance ---

func (suite *AccountServiceTestSuite) TestResolveBalance_Delegates() {
	ctx := context.Background()
	account := suite.account(domain.Asset, "1001")
	asOf := time.Now()
	want := decimal.RequireFromString("123.45")

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockReportingRepo.On("GetAccountBalanceAsOf", ctx, suite.organizationID, account.AccountID, asOf).Return(want, nil).Once()

	balance, err := suite.service.ResolveBalance(ctx, suite.organizationID, account.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(want))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
