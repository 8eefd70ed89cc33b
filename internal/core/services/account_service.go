package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/savorworks/ledger_backend/internal/apperrors"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portsrepo "github.com/savorworks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountServiceImpl)

// WithAccountOrganizationAuthorizer adds the organization authorizer dependency
func WithAccountOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountServiceImpl) {
		s.OrganizationAuthorizer = authorizer
	}
}

// WithReportingRepository adds the reporting repository used for derived balances
func WithReportingRepository(repo portsrepo.ReportingRepositoryFacade) AccountServiceOption {
	return func(s *accountServiceImpl) {
		s.reportingRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountServiceImpl{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

// validateParent checks that a parent account is usable for the given child:
// it must exist, live in the same organization, and carry the same account
// type so every subtree aggregates homogeneously.
func (s *accountServiceImpl) validateParent(ctx context.Context, organizationID string, parentID string, childType domain.AccountType) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrInvalidParent, parentID)
		}
		return nil, err
	}
	if parent.OrganizationID != organizationID {
		return nil, fmt.Errorf("%w: parent account %s belongs to another organization", apperrors.ErrInvalidParent, parentID)
	}
	if parent.AccountType != childType {
		return nil, fmt.Errorf("%w: parent account %s is %s, child is %s", apperrors.ErrInvalidParent, parentID, parent.AccountType, childType)
	}
	return parent, nil
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	normalBalance := domain.NormalBalance(req.NormalBalance)
	if normalBalance == "" {
		normalBalance = domain.DefaultNormalBalance(accountType)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.validateParent(ctx, organizationID, parentID, accountType); err != nil {
			s.LogError(ctx, err, "Parent account validation failed",
				slog.String("parent_id", parentID))
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:         uuid.NewString(),
		OrganizationID:    organizationID,
		Code:              req.Code,
		Name:              req.Name,
		AccountType:       accountType,
		NormalBalance:     normalBalance,
		ParentAccountID:   parentID,
		Description:       req.Description,
		IsCurrent:         req.IsCurrent,
		IsCostOfGoodsSold: req.IsCostOfGoodsSold,
		IsActive:          true,
		Balance:           decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	// Scope check: accounts of other organizations are invisible, not forbidden.
	if account.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountServiceImpl) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		if acc.OrganizationID != organizationID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
}

// GetAccountHierarchy returns the chart of accounts as a forest. Accounts
// arrive ordered by code, so children and roots keep code order without an
// extra sort per node.
func (s *accountServiceImpl) GetAccountHierarchy(ctx context.Context, organizationID string) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListAllAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &domain.AccountNode{Account: accounts[i]}
	}

	roots := []*domain.AccountNode{}
	for i := range accounts {
		node := nodes[accounts[i].AccountID]
		parentID := accounts[i].ParentAccountID
		if parentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[parentID]
		if !ok {
			// Dangling parent reference, surface the account at the top level.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Code < roots[j].Code
	})
	return roots, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, updaterUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to update account",
			slog.String("user_id", updaterUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsCurrent != nil {
		account.IsCurrent = *req.IsCurrent
	}
	if req.IsCostOfGoodsSold != nil {
		account.IsCostOfGoodsSold = *req.IsCostOfGoodsSold
	}

	if req.AccountType != nil && domain.AccountType(*req.AccountType) != account.AccountType {
		hasPosted, err := s.accountRepo.HasPostedLines(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if hasPosted {
			return nil, fmt.Errorf("%w: account %s has posted activity", apperrors.ErrAccountTypeLocked, accountID)
		}
		oldDefault := domain.DefaultNormalBalance(account.AccountType)
		account.AccountType = domain.AccountType(*req.AccountType)
		// A normal balance left at the old type's default follows the new type.
		if account.NormalBalance == oldDefault {
			account.NormalBalance = domain.DefaultNormalBalance(account.AccountType)
		}
	}

	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if newParentID == "" {
			account.ParentAccountID = ""
		} else {
			if newParentID == accountID {
				return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrInvalidParent)
			}
			parent, err := s.validateParent(ctx, organizationID, newParentID, account.AccountType)
			if err != nil {
				return nil, err
			}
			// Walk up from the new parent; hitting the account itself means
			// the reparenting would close a cycle.
			for cursor := parent; cursor.ParentAccountID != ""; {
				if cursor.ParentAccountID == accountID {
					return nil, fmt.Errorf("%w: account %s is a descendant of %s", apperrors.ErrInvalidParent, newParentID, accountID)
				}
				cursor, err = s.accountRepo.FindAccountByID(ctx, cursor.ParentAccountID)
				if err != nil {
					return nil, err
				}
			}
			account.ParentAccountID = newParentID
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountServiceImpl) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to deactivate account",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return err
	}

	account, err := s.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s carries a balance of %s", apperrors.ErrValidation, accountID, account.Balance.String())
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

func (s *accountServiceImpl) ResolveBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return decimal.Zero, err
	}
	if s.reportingRepo == nil {
		return decimal.Zero, apperrors.NewAppError(500, "reporting repository not configured", nil)
	}
	return s.reportingRepo.GetAccountBalanceAsOf(ctx, organizationID, accountID, asOf)
}
