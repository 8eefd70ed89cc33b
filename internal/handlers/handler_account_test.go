package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/savorworks/ledger_backend/internal/middleware"
	"github.com/savorworks/ledger_backend/internal/utils"
)

// --- Mock AccountService ---
type mockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*mockAccountService)(nil)

func (m *mockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *mockAccountService) GetAccountHierarchy(ctx context.Context, organizationID string) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}

func (m *mockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

func (m *mockAccountService) ResolveBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mockAccountService
	jwtSecret          string
	organizationID     string
	userID             string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidators())

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(mockAccountService)
	scoped := suite.router.Group("/api/v1/organizations/:organization_id")
	registerAccountRoutes(scoped, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, "ledger-test", time.Hour)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: "ASSET"}
	payload, _ := json.Marshal(reqBody)

	created := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "1001",
		Name:           "Cash",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.organizationID, reqBody, suite.userID).
		Return(created, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", suite.organizationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, payload))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("DEBIT", resp.NormalBalance)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountType() {
	payload := []byte(`{"code":"1001","name":"Cash","accountType":"SOMETHING"}`)

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", suite.organizationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, payload))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	reqBody := dto.CreateAccountRequest{Code: "1001", Name: "Cash", AccountType: "ASSET"}
	payload, _ := json.Marshal(reqBody)

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.organizationID, reqBody, suite.userID).
		Return(nil, apperrors.ErrDuplicateCode).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", suite.organizationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, payload))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.organizationID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", suite.organizationID, accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_Success() {
	accountID := uuid.NewString()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockAccountService.On("ResolveBalance", mock.Anything, suite.organizationID, accountID, asOf).
		Return(decimal.RequireFromString("250.75"), nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s/balance?asOf=2026-06-30", suite.organizationID, accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("250.75")))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestMissingToken_Unauthorized() {
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", suite.organizationID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
