package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
	"setflow/internal/pricing"
)

// LineItemInput is a single ad-hoc charge or credit. Value is a decimal
// string; credits are negative. Malformed values parse to zero.
type LineItemInput struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// CreateProposalInput is the DTO for creating a proposal. ValidUntil
// bounds how long the proposal stays open once sent; nil never expires.
type CreateProposalInput struct {
	ClientID   uuid.UUID       `json:"client_id" binding:"required"`
	Title      string          `json:"title" binding:"required"`
	Currency   string          `json:"currency"`
	ServiceIDs []uuid.UUID     `json:"service_ids"`
	LineItems  []LineItemInput `json:"line_items"`
	Discount   string          `json:"discount"`
	ValidUntil *time.Time      `json:"valid_until"`
}

// UpdateProposalInput is the DTO for updating a proposal. Financial
// fields trigger a full totals recompute.
type UpdateProposalInput struct {
	Title      *string          `json:"title"`
	ClientID   *uuid.UUID       `json:"client_id"`
	ServiceIDs *[]uuid.UUID     `json:"service_ids"`
	LineItems  *[]LineItemInput `json:"line_items"`
	Discount   *string          `json:"discount"`
	ValidUntil *time.Time       `json:"valid_until"`
}

// ProposalService defines the proposal management contract.
type ProposalService interface {
	Create(ctx context.Context, actor *Claims, input CreateProposalInput) (*domain.Proposal, error)
	GetByID(ctx context.Context, orgID, proposalID uuid.UUID) (*domain.Proposal, error)
	List(ctx context.Context, orgID uuid.UUID, status domain.ProposalStatus, offset, limit int) ([]domain.Proposal, int, error)
	Update(ctx context.Context, actor *Claims, proposalID uuid.UUID, input UpdateProposalInput) (*domain.Proposal, error)
	Delete(ctx context.Context, orgID, proposalID uuid.UUID) error
	Send(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error)
	Approve(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error)
	Reject(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error)
}

type proposalService struct {
	proposalRepo port.ProposalRepository
	clientRepo   port.ClientRepository
	catalogRepo  port.CatalogServiceRepository
	projectRepo  port.ProjectRepository
	notifRepo    port.NotificationRepository
	orgRepo      port.OrganizationRepository
	store        *cache.Store
}

// NewProposalService creates a new ProposalService implementation.
func NewProposalService(
	proposalRepo port.ProposalRepository,
	clientRepo port.ClientRepository,
	catalogRepo port.CatalogServiceRepository,
	projectRepo port.ProjectRepository,
	notifRepo port.NotificationRepository,
	orgRepo port.OrganizationRepository,
	store *cache.Store,
) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		clientRepo:   clientRepo,
		catalogRepo:  catalogRepo,
		projectRepo:  projectRepo,
		notifRepo:    notifRepo,
		orgRepo:      orgRepo,
		store:        store,
	}
}

func lineItemsFromInput(items []LineItemInput) domain.LineItems {
	out := make(domain.LineItems, 0, len(items))
	for _, li := range items {
		out = append(out, domain.LineItem{
			Label:      li.Label,
			ValueCents: domain.ParseAmount(li.Value),
		})
	}
	return out
}

// recompute recalculates the proposal's totals from its current
// financial fields and the organization's tax rates.
func (s *proposalService) recompute(ctx context.Context, proposal *domain.Proposal) error {
	org, err := s.orgRepo.GetByID(ctx, proposal.OrgID)
	if err != nil {
		return err
	}
	services, err := s.catalogRepo.ListByIDs(ctx, proposal.OrgID, proposal.ServiceIDs)
	if err != nil {
		return fmt.Errorf("loading catalog services: %w", err)
	}

	totals := pricing.Calculate(
		proposal.ServiceIDs, services, proposal.LineItems,
		proposal.DiscountCents, org.CNPJTaxRatePct, org.ProdutoraTaxRatePct,
	)
	proposal.DiscountCents = totals.DiscountCents
	proposal.SubtotalCents = totals.SubtotalCents
	proposal.TaxCents = totals.TaxCents
	proposal.TotalCents = totals.TotalCents
	return nil
}

func (s *proposalService) Create(ctx context.Context, actor *Claims, input CreateProposalInput) (*domain.Proposal, error) {
	client, err := s.clientRepo.GetByID(ctx, actor.OrgID, input.ClientID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		org, err := s.orgRepo.GetByID(ctx, actor.OrgID)
		if err != nil {
			return nil, err
		}
		currency = org.Currency
	}

	proposal := &domain.Proposal{
		OrgID:         actor.OrgID,
		ClientID:      client.ID,
		Title:         input.Title,
		Currency:      currency,
		Status:        domain.ProposalStatusDraft,
		ServiceIDs:    input.ServiceIDs,
		LineItems:     lineItemsFromInput(input.LineItems),
		DiscountCents: domain.ParseAmount(input.Discount),
		ValidUntil:    input.ValidUntil,
		CreatedBy:     actor.MemberID,
	}
	if err := s.recompute(ctx, proposal); err != nil {
		return nil, err
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationProposalWrite)
	return proposal, nil
}

func (s *proposalService) GetByID(ctx context.Context, orgID, proposalID uuid.UUID) (*domain.Proposal, error) {
	return s.proposalRepo.GetByID(ctx, orgID, proposalID)
}

// proposalListSnapshot is the cached result of a proposal list page.
type proposalListSnapshot struct {
	proposals []domain.Proposal
	total     int
	status    domain.ProposalStatus
	offset    int
	limit     int
}

// List serves repeated reads of the same page and status filter from
// the org's cached snapshot; proposal writes drop it through the
// invalidation table.
func (s *proposalService) List(ctx context.Context, orgID uuid.UUID, status domain.ProposalStatus, offset, limit int) ([]domain.Proposal, int, error) {
	if v, ok := s.store.Get(orgID, cache.CollectionProposals); ok {
		if snap, ok := v.(proposalListSnapshot); ok && snap.status == status && snap.offset == offset && snap.limit == limit {
			return snap.proposals, snap.total, nil
		}
	}

	proposals, total, err := s.proposalRepo.ListByOrg(ctx, orgID, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	s.store.Put(orgID, cache.CollectionProposals, proposalListSnapshot{
		proposals: proposals,
		total:     total,
		status:    status,
		offset:    offset,
		limit:     limit,
	})
	return proposals, total, nil
}

func (s *proposalService) Update(ctx context.Context, actor *Claims, proposalID uuid.UUID, input UpdateProposalInput) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, actor.OrgID, proposalID)
	if err != nil {
		return nil, err
	}

	financial := input.ServiceIDs != nil || input.LineItems != nil || input.Discount != nil
	if financial && !proposal.Status.Editable() {
		return nil, domain.ErrProposalLocked
	}

	if input.Title != nil {
		proposal.Title = *input.Title
	}
	if input.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, actor.OrgID, *input.ClientID); err != nil {
			return nil, err
		}
		proposal.ClientID = *input.ClientID
	}
	if input.ServiceIDs != nil {
		proposal.ServiceIDs = *input.ServiceIDs
	}
	if input.LineItems != nil {
		proposal.LineItems = lineItemsFromInput(*input.LineItems)
	}
	if input.Discount != nil {
		proposal.DiscountCents = domain.ParseAmount(*input.Discount)
	}
	if input.ValidUntil != nil {
		proposal.ValidUntil = input.ValidUntil
	}

	if financial {
		if err := s.recompute(ctx, proposal); err != nil {
			return nil, err
		}
	}
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationProposalWrite)
	return proposal, nil
}

func (s *proposalService) Delete(ctx context.Context, orgID, proposalID uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(ctx, orgID, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != domain.ProposalStatusDraft {
		return domain.ErrProposalLocked
	}
	if err := s.proposalRepo.Delete(ctx, orgID, proposalID); err != nil {
		return err
	}
	s.store.Invalidate(orgID, cache.MutationProposalWrite)
	return nil
}

func (s *proposalService) Send(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, actor.OrgID, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != domain.ProposalStatusDraft {
		return nil, domain.ErrInvalidProposalStatus
	}

	// Totals are settled one last time before the proposal leaves draft.
	if err := s.recompute(ctx, proposal); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	proposal.Status = domain.ProposalStatusSent
	proposal.SentAt = &now
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationProposalWrite)
	return proposal, nil
}

// settleExpired writes the expired state for a sent proposal whose
// validity deadline passed before the sweeper caught it.
func (s *proposalService) settleExpired(ctx context.Context, proposal *domain.Proposal, now time.Time) error {
	proposal.Status = domain.ProposalStatusExpired
	proposal.DecidedAt = &now
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return err
	}
	s.store.Invalidate(proposal.OrgID, cache.MutationProposalWrite)
	return nil
}

// Approve moves a sent proposal to approved and spawns a project whose
// budget is the proposal total.
func (s *proposalService) Approve(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, actor.OrgID, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != domain.ProposalStatusSent {
		return nil, domain.ErrInvalidProposalStatus
	}

	now := time.Now().UTC()
	if proposal.IsExpired(now) {
		if err := s.settleExpired(ctx, proposal, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrProposalExpired
	}

	project := &domain.Project{
		OrgID:       proposal.OrgID,
		ClientID:    proposal.ClientID,
		ProposalID:  &proposal.ID,
		Name:        proposal.Title,
		Status:      domain.ProjectStatusActive,
		BudgetCents: proposal.TotalCents,
		CreatedBy:   actor.MemberID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("spawning project: %w", err)
	}

	proposal.Status = domain.ProposalStatusApproved
	proposal.DecidedAt = &now
	proposal.ProjectID = &project.ID
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		OrgID:    proposal.OrgID,
		MemberID: proposal.CreatedBy,
		Kind:     domain.NotificationProposalApproved,
		Message:  fmt.Sprintf("proposal %q was approved", proposal.Title),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	s.store.Invalidate(actor.OrgID, cache.MutationProposalApproved)
	return proposal, nil
}

func (s *proposalService) Reject(ctx context.Context, actor *Claims, proposalID uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, actor.OrgID, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != domain.ProposalStatusSent {
		return nil, domain.ErrInvalidProposalStatus
	}

	now := time.Now().UTC()
	if proposal.IsExpired(now) {
		if err := s.settleExpired(ctx, proposal, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrProposalExpired
	}

	proposal.Status = domain.ProposalStatusRejected
	proposal.DecidedAt = &now
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		OrgID:    proposal.OrgID,
		MemberID: proposal.CreatedBy,
		Kind:     domain.NotificationProposalRejected,
		Message:  fmt.Sprintf("proposal %q was rejected", proposal.Title),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	s.store.Invalidate(actor.OrgID, cache.MutationProposalWrite)
	return proposal, nil
}
