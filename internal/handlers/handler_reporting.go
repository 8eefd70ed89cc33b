package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers the organization-scoped report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Produces the trial balance as of a date from posted activity
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 500 {object} ErrorResponse "Ledger does not close"
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	snapshot, err := h.reportingService.GenerateTrialBalance(c.Request.Context(), userID, c.Param("organization_id"), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(snapshot))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Produces the balance sheet as of a date; retained earnings fold in unclosed income
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 500 {object} ErrorResponse "Accounting identity violated"
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.GenerateBalanceSheet(c.Request.Context(), userID, c.Param("organization_id"), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getIncomeStatement godoc
// @Summary Get the income statement
// @Description Produces revenue, expense, gross profit and net income over an inclusive interval
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param fromDate query string true "Period start (YYYY-MM-DD)"
// @Param toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse "Invalid or inverted interval"
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	fromDate, err := time.Parse(dateLayout, c.Query("fromDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid fromDate, expected YYYY-MM-DD"})
		return
	}
	toDate, err := time.Parse(dateLayout, c.Query("toDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid toDate, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.GenerateIncomeStatement(c.Request.Context(), userID, c.Param("organization_id"), fromDate, toDate)
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}
