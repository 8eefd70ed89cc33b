package dto

import "github.com/savorworks/ledger_backend/internal/core/domain"

// CreateOrganizationRequest is the payload for creating an organization.
// The creating user becomes its first ADMIN member.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddUserToOrganizationRequest adds a member with a role.
type AddUserToOrganizationRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=READ_ONLY MEMBER ADMIN"`
}

// OrganizationResponse is the public representation of an organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// ToOrganizationResponse converts a domain Organization to its response DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Description:    o.Description,
		IsActive:       o.IsActive,
	}
}

// ToOrganizationResponses converts a slice of domain Organizations to DTOs.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return responses
}
