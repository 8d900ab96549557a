package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/port"
)

// UpdateOrganizationInput is the DTO for updating organization settings.
// Tax rates are percentages and feed every proposal total recompute.
type UpdateOrganizationInput struct {
	Name                *string  `json:"name"`
	Currency            *string  `json:"currency" binding:"omitempty,len=3"`
	SeatLimit           *int     `json:"seat_limit" binding:"omitempty,min=0"`
	AllowSeatOverage    *bool    `json:"allow_seat_overage"`
	CNPJTaxRatePct      *float64 `json:"cnpj_tax_rate_pct" binding:"omitempty,min=0,max=100"`
	ProdutoraTaxRatePct *float64 `json:"produtora_tax_rate_pct" binding:"omitempty,min=0,max=100"`
}

// OrganizationService defines the organization settings contract.
type OrganizationService interface {
	GetByID(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error)
	Update(ctx context.Context, actor *Claims, input UpdateOrganizationInput) (*domain.Organization, error)
}

type organizationService struct {
	repo port.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService implementation.
func NewOrganizationService(repo port.OrganizationRepository) OrganizationService {
	return &organizationService{repo: repo}
}

func (s *organizationService) GetByID(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	return s.repo.GetByID(ctx, orgID)
}

func (s *organizationService) Update(ctx context.Context, actor *Claims, input UpdateOrganizationInput) (*domain.Organization, error) {
	// Settings changes are owner-gated.
	if actor.Role != domain.RoleOwner {
		return nil, domain.ErrInsufficientRole
	}

	org, err := s.repo.GetByID(ctx, actor.OrgID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		org.Name = *input.Name
	}
	if input.Currency != nil {
		org.Currency = *input.Currency
	}
	if input.SeatLimit != nil {
		org.SeatLimit = *input.SeatLimit
	}
	if input.AllowSeatOverage != nil {
		org.AllowSeatOverage = *input.AllowSeatOverage
	}
	if input.CNPJTaxRatePct != nil {
		org.CNPJTaxRatePct = *input.CNPJTaxRatePct
	}
	if input.ProdutoraTaxRatePct != nil {
		org.ProdutoraTaxRatePct = *input.ProdutoraTaxRatePct
	}

	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}
