package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerJournalRoutes registers the organization-scoped journal routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}

	// Account activity lives under accounts but is served by the journal
	// service, so it is registered here.
	rg.GET("/accounts/:account_id/lines", h.listLinesByAccount)
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates the double-entry invariant and persists a DRAFT entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced lines or unknown account"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), c.Param("organization_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a filtered page of entries using cursor pagination
// @Tags journal-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param accountID query string false "Only entries touching this account"
// @Param status query string false "Entry status filter" Enums(DRAFT, POSTED, REVERSED)
// @Param fromDate query string false "Earliest entry date (YYYY-MM-DD)"
// @Param toDate query string false "Latest entry date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Param includeLines query bool false "Attach lines to each entry"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid filter or cursor"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	params, err := parseListEntriesParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), c.Param("organization_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func parseListEntriesParams(c *gin.Context) (dto.ListEntriesParams, error) {
	params := dto.ListEntriesParams{}

	if accountID := c.Query("accountID"); accountID != "" {
		params.AccountID = &accountID
	}
	if status := c.Query("status"); status != "" {
		s := domain.EntryStatus(status)
		params.Status = &s
	}
	if raw := c.Query("fromDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return params, err
		}
		params.FromDate = &t
	}
	if raw := c.Query("toDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return params, err
		}
		params.ToDate = &t
	}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	params.IncludeLines = c.Query("includeLines") == "true"
	return params, nil
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("organization_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Applies a partial update; only DRAFT entries are mutable
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced replacement lines"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry is no longer a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), c.Param("organization_id"), c.Param("entry_id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Removes a DRAFT entry and its lines; posted entries are immutable
// @Tags journal-entries
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry is no longer a draft"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), c.Param("organization_id"), c.Param("entry_id"), userID); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Transitions a DRAFT entry to POSTED and applies account balances atomically
// @Tags journal-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry already posted or reversed"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("organization_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts the mirror entry, linking it to the original
// @Tags journal-entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry is not posted"
// @Security BearerAuth
// @Router /organizations/{organization_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	reversing, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("organization_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversing))
}

// listLinesByAccount godoc
// @Summary List an account's posted activity
// @Description Retrieves the account's posted journal lines, newest first
// @Tags accounts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param account_id path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/lines [get]
func (h *journalHandler) listLinesByAccount(c *gin.Context) {
	params := dto.ListLinesParams{}
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	lines, nextToken, err := h.journalService.ListLinesByAccount(c.Request.Context(), c.Param("organization_id"), c.Param("account_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list account activity")
		return
	}

	c.JSON(http.StatusOK, dto.ListLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	})
}
