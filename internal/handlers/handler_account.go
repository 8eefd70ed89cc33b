package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers the organization-scoped account routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/hierarchy", h.getHierarchy)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
		accounts.GET("/:account_id/balance", h.getBalance)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a chart-of-accounts node in the organization
// @Tags accounts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or invalid parent"
// @Failure 409 {object} ErrorResponse "Account code already exists"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("organization_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of the organization's accounts ordered by code
// @Tags accounts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("organization_id"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getHierarchy godoc
// @Summary Get the account hierarchy
// @Description Retrieves the chart of accounts as a forest sorted by code
// @Tags accounts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {array} dto.AccountNodeResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/hierarchy [get]
func (h *accountHandler) getHierarchy(c *gin.Context) {
	nodes, err := h.accountService.GetAccountHierarchy(c.Request.Context(), c.Param("organization_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account hierarchy")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountNodeResponses(nodes))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves a single account by ID
// @Tags accounts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("organization_id"), c.Param("account_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies a partial update; the account type locks once posted activity exists
// @Tags accounts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or invalid parent"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Account type locked by posted activity"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("organization_id"), c.Param("account_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks an account inactive; its cached balance must be zero
// @Tags accounts
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Success 204 "Account deactivated"
// @Failure 400 {object} ErrorResponse "Account carries a balance"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 409 {object} ErrorResponse "Account already inactive"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("organization_id"), c.Param("account_id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Derives the balance from posted lines as of a date, in normal balance terms
// @Tags accounts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Param asOf query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	accountID := c.Param("account_id")
	balance, err := h.accountService.ResolveBalance(c.Request.Context(), c.Param("organization_id"), accountID, asOf)
	if err != nil {
		respondError(c, err, "Failed to resolve account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balance:   balance,
	})
}
