package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/service"
	"setflow/mocks"
)

type proposalFixture struct {
	proposalRepo *mocks.MockProposalRepo
	clientRepo   *mocks.MockClientRepo
	catalogRepo  *mocks.MockCatalogRepo
	projectRepo  *mocks.MockProjectRepo
	notifRepo    *mocks.MockNotificationRepo
	orgRepo      *mocks.MockOrgRepo
	svc          service.ProposalService
}

func newProposalFixture() *proposalFixture {
	f := &proposalFixture{
		proposalRepo: new(mocks.MockProposalRepo),
		clientRepo:   new(mocks.MockClientRepo),
		catalogRepo:  new(mocks.MockCatalogRepo),
		projectRepo:  new(mocks.MockProjectRepo),
		notifRepo:    new(mocks.MockNotificationRepo),
		orgRepo:      new(mocks.MockOrgRepo),
	}
	f.svc = service.NewProposalService(
		f.proposalRepo,
		f.clientRepo,
		f.catalogRepo,
		f.projectRepo,
		f.notifRepo,
		f.orgRepo,
		cache.NewStore(),
	)
	return f
}

func producerClaims(orgID uuid.UUID) *service.Claims {
	return &service.Claims{
		OrgID:    orgID,
		MemberID: uuid.New(),
		Email:    "carla@lumafilms.com",
		Role:     domain.RoleProducer,
	}
}

func TestProposalCreate_ComputesTotals(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	org := &domain.Organization{
		ID:                  orgID,
		Currency:            "BRL",
		CNPJTaxRatePct:      16.0,
		ProdutoraTaxRatePct: 10.0,
		IsActive:            true,
	}
	client := &domain.Client{ID: uuid.New(), OrgID: orgID, Name: "Duarte Cosmetics"}
	services := []domain.CatalogService{
		{ID: uuid.New(), OrgID: orgID, Name: "Direção", RateCents: 1_000_00},
		{ID: uuid.New(), OrgID: orgID, Name: "Edição", RateCents: 500_00},
	}

	f.clientRepo.On("GetByID", mock.Anything, orgID, client.ID).Return(client, nil)
	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.catalogRepo.On("ListByIDs", mock.Anything, orgID, []uuid.UUID{services[0].ID, services[1].ID}).Return(services, nil)
	f.proposalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Proposal")).Return(nil)

	proposal, err := f.svc.Create(context.Background(), actor, service.CreateProposalInput{
		ClientID:   client.ID,
		Title:      "Duarte Campaign",
		ServiceIDs: []uuid.UUID{services[0].ID, services[1].ID},
		LineItems:  []service.LineItemInput{{Label: "Travel", Value: "200.00"}},
		Discount:   "100.00",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusDraft, proposal.Status)
	// Currency falls back to the organization default.
	assert.Equal(t, "BRL", proposal.Currency)
	// 1000 + 500 + 200 - 100 = 1600; taxes 16% + 10% on the subtotal.
	assert.Equal(t, domain.Cents(160_000), proposal.SubtotalCents)
	assert.Equal(t, domain.Cents(25_600+16_000), proposal.TaxCents)
	assert.Equal(t, domain.Cents(160_000+41_600), proposal.TotalCents)
	assert.Equal(t, actor.MemberID, proposal.CreatedBy)

	f.proposalRepo.AssertExpectations(t)
}

func TestProposalUpdate_FinancialLocked(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Title:  "Duarte Campaign",
		Status: domain.ProposalStatusApproved,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)

	discount := "50.00"
	_, err := f.svc.Update(context.Background(), actor, proposal.ID, service.UpdateProposalInput{
		Discount: &discount,
	})

	assert.ErrorIs(t, err, domain.ErrProposalLocked)
	f.proposalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProposalUpdate_TitleOnApproved(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Title:  "Duarte Campaign",
		Status: domain.ProposalStatusApproved,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)

	// Renaming touches no financial field and stays allowed after approval.
	title := "Duarte Campaign 2026"
	got, err := f.svc.Update(context.Background(), actor, proposal.ID, service.UpdateProposalInput{
		Title: &title,
	})

	require.NoError(t, err)
	assert.Equal(t, "Duarte Campaign 2026", got.Title)
	f.orgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProposalSend_Success(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	org := &domain.Organization{ID: orgID, Currency: "BRL", IsActive: true}
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Title:  "Duarte Campaign",
		Status: domain.ProposalStatusDraft,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.catalogRepo.On("ListByIDs", mock.Anything, orgID, mock.Anything).Return([]domain.CatalogService{}, nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)

	got, err := f.svc.Send(context.Background(), actor, proposal.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusSent, got.Status)
	require.NotNil(t, got.SentAt)
}

func TestProposalSend_NotDraft(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Status: domain.ProposalStatusSent,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)

	_, err := f.svc.Send(context.Background(), actor, proposal.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidProposalStatus)
}

func TestProposalApprove_SpawnsProject(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	createdBy := uuid.New()
	clientID := uuid.New()
	proposal := &domain.Proposal{
		ID:         uuid.New(),
		OrgID:      orgID,
		ClientID:   clientID,
		Title:      "Duarte Campaign",
		Status:     domain.ProposalStatusSent,
		TotalCents: 201_600_00,
		CreatedBy:  createdBy,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.projectRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Name == "Duarte Campaign" &&
			p.ClientID == clientID &&
			p.BudgetCents == domain.Cents(201_600_00) &&
			p.Status == domain.ProjectStatusActive &&
			p.ProposalID != nil && *p.ProposalID == proposal.ID
	})).Return(nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)
	f.notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.MemberID == createdBy && n.Kind == domain.NotificationProposalApproved
	})).Return(nil)

	got, err := f.svc.Approve(context.Background(), actor, proposal.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusApproved, got.Status)
	require.NotNil(t, got.DecidedAt)
	require.NotNil(t, got.ProjectID)

	f.projectRepo.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
}

func TestProposalApprove_NotSent(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Status: domain.ProposalStatusDraft,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)

	_, err := f.svc.Approve(context.Background(), actor, proposal.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidProposalStatus)
	f.projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalReject_NotifiesCreator(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	createdBy := uuid.New()
	proposal := &domain.Proposal{
		ID:        uuid.New(),
		OrgID:     orgID,
		Title:     "Duarte Campaign",
		Status:    domain.ProposalStatusSent,
		CreatedBy: createdBy,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)
	f.notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.MemberID == createdBy && n.Kind == domain.NotificationProposalRejected
	})).Return(nil)

	got, err := f.svc.Reject(context.Background(), actor, proposal.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusRejected, got.Status)
	f.notifRepo.AssertExpectations(t)
}

func TestProposalDelete_DraftOnly(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Status: domain.ProposalStatusSent,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)

	err := f.svc.Delete(context.Background(), orgID, proposal.ID)

	assert.ErrorIs(t, err, domain.ErrProposalLocked)
	f.proposalRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalDelete_Draft(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	proposal := &domain.Proposal{
		ID:     uuid.New(),
		OrgID:  orgID,
		Status: domain.ProposalStatusDraft,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.proposalRepo.On("Delete", mock.Anything, orgID, proposal.ID).Return(nil)

	err := f.svc.Delete(context.Background(), orgID, proposal.ID)

	require.NoError(t, err)
	f.proposalRepo.AssertExpectations(t)
}

func TestProposalApprove_ExpiredSettlesBeforeDecision(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	deadline := time.Now().UTC().Add(-time.Hour)
	proposal := &domain.Proposal{
		ID:         uuid.New(),
		OrgID:      orgID,
		Title:      "Duarte Campaign",
		Status:     domain.ProposalStatusSent,
		ValidUntil: &deadline,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)

	_, err := f.svc.Approve(context.Background(), actor, proposal.ID)

	assert.ErrorIs(t, err, domain.ErrProposalExpired)
	assert.Equal(t, domain.ProposalStatusExpired, proposal.Status)
	require.NotNil(t, proposal.DecidedAt)
	f.proposalRepo.AssertExpectations(t)
	f.projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalReject_ExpiredSettlesBeforeDecision(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	actor := producerClaims(orgID)
	deadline := time.Now().UTC().Add(-time.Minute)
	proposal := &domain.Proposal{
		ID:         uuid.New(),
		OrgID:      orgID,
		Title:      "Duarte Campaign",
		Status:     domain.ProposalStatusSent,
		ValidUntil: &deadline,
	}

	f.proposalRepo.On("GetByID", mock.Anything, orgID, proposal.ID).Return(proposal, nil)
	f.proposalRepo.On("Update", mock.Anything, proposal).Return(nil)

	_, err := f.svc.Reject(context.Background(), actor, proposal.ID)

	assert.ErrorIs(t, err, domain.ErrProposalExpired)
	assert.Equal(t, domain.ProposalStatusExpired, proposal.Status)
	f.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposalList_CachedUntilWrite(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	draft := domain.Proposal{ID: uuid.New(), OrgID: orgID, Status: domain.ProposalStatusDraft}
	page := []domain.Proposal{draft}

	f.proposalRepo.On("ListByOrg", mock.Anything, orgID, domain.ProposalStatusDraft, 0, 20).Return(page, 1, nil)
	f.proposalRepo.On("GetByID", mock.Anything, orgID, draft.ID).Return(&draft, nil)
	f.proposalRepo.On("Delete", mock.Anything, orgID, draft.ID).Return(nil)

	_, total, err := f.svc.List(context.Background(), orgID, domain.ProposalStatusDraft, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// The same filter and page come back from the snapshot.
	_, _, err = f.svc.List(context.Background(), orgID, domain.ProposalStatusDraft, 0, 20)
	require.NoError(t, err)
	f.proposalRepo.AssertNumberOfCalls(t, "ListByOrg", 1)

	// Deleting a draft drops the snapshot; the next read hits the repository.
	require.NoError(t, f.svc.Delete(context.Background(), orgID, draft.ID))
	_, _, err = f.svc.List(context.Background(), orgID, domain.ProposalStatusDraft, 0, 20)
	require.NoError(t, err)
	f.proposalRepo.AssertNumberOfCalls(t, "ListByOrg", 2)
}

func TestProposalList_FilterChangeSkipsSnapshot(t *testing.T) {
	f := newProposalFixture()

	orgID := uuid.New()
	f.proposalRepo.On("ListByOrg", mock.Anything, orgID, domain.ProposalStatusDraft, 0, 20).Return([]domain.Proposal{}, 0, nil)
	f.proposalRepo.On("ListByOrg", mock.Anything, orgID, domain.ProposalStatusSent, 0, 20).Return([]domain.Proposal{}, 0, nil)

	_, _, err := f.svc.List(context.Background(), orgID, domain.ProposalStatusDraft, 0, 20)
	require.NoError(t, err)
	_, _, err = f.svc.List(context.Background(), orgID, domain.ProposalStatusSent, 0, 20)
	require.NoError(t, err)

	f.proposalRepo.AssertNumberOfCalls(t, "ListByOrg", 2)
}
