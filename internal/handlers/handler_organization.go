package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/savorworks/ledger_backend/internal/core/domain"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// organizationHandler handles HTTP requests related to organizations.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

// registerOrganizationRoutes registers organization management routes and
// the organization-scoped sub-resources.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &organizationHandler{organizationService: services.OrganizationSvc}

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listOrganizations)
	}

	// Every route under a concrete organization requires membership.
	scoped := orgs.Group("/:organization_id", requireOrganizationAccess(services.OrganizationSvc))
	{
		scoped.GET("", h.getOrganization)
		scoped.POST("/users", h.addUser)
	}

	registerAccountRoutes(scoped, services.AccountSvc)
	registerJournalRoutes(scoped, services.JournalSvc)
	registerReportingRoutes(scoped, services.ReportingSvc)
}

// requireOrganizationAccess verifies READ_ONLY membership for all nested
// routes. Services re-check stronger roles on mutating operations.
func requireOrganizationAccess(authorizer portssvc.OrganizationAuthorizerSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		organizationID := c.Param("organization_id")
		if err := authorizer.AuthorizeUserAction(c.Request.Context(), userID, organizationID, domain.RoleReadOnly); err != nil {
			respondError(c, err, "Failed to authorize organization access")
			c.Abort()
			return
		}
		c.Next()
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization with the caller as its first ADMIN
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listOrganizations godoc
// @Summary List the caller's organizations
// @Description Retrieves every organization the caller belongs to
// @Tags organizations
// @Produce json
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list organizations")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves one organization the caller belongs to
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	org, err := h.organizationService.GetOrganizationByID(c.Request.Context(), userID, c.Param("organization_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addUser godoc
// @Summary Add a member
// @Description Adds a user to the organization with a role; caller must be ADMIN
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param membership body dto.AddUserToOrganizationRequest true "Membership details"
// @Success 204 "Member added"
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 403 {object} ErrorResponse "Caller is not ADMIN"
// @Failure 409 {object} ErrorResponse "User already a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addUser(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.organizationService.AddUser(c.Request.Context(), userID, c.Param("organization_id"), req); err != nil {
		respondError(c, err, "Failed to add user to organization")
		return
	}

	c.Status(http.StatusNoContent)
}
