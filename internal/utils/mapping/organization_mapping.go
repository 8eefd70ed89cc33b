package mapping

import (
	"github.com/savorworks/ledger_backend/internal/core/domain"
	"github.com/savorworks/ledger_backend/internal/models"
)

// ToDomainOrganization converts a model Organization to a domain Organization.
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrganization converts a domain Organization to a model Organization.
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUserOrganization converts a model membership row to its domain form.
func ToDomainUserOrganization(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           domain.UserOrganizationRole(m.Role),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
