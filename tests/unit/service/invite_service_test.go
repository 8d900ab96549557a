package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/cache"
	"setflow/internal/config"
	"setflow/internal/domain"
	"setflow/internal/service"
	"setflow/mocks"
)

type inviteFixture struct {
	inviteRepo   *mocks.MockInviteRepo
	memberRepo   *mocks.MockMemberRepo
	orgRepo      *mocks.MockOrgRepo
	supplierRepo *mocks.MockSupplierRepo
	notifRepo    *mocks.MockNotificationRepo
	emailSender  *mocks.MockEmailSender
	store        *cache.Store
	svc          service.InviteService
}

func newInviteFixture() *inviteFixture {
	f := &inviteFixture{
		inviteRepo:   new(mocks.MockInviteRepo),
		memberRepo:   new(mocks.MockMemberRepo),
		orgRepo:      new(mocks.MockOrgRepo),
		supplierRepo: new(mocks.MockSupplierRepo),
		notifRepo:    new(mocks.MockNotificationRepo),
		emailSender:  new(mocks.MockEmailSender),
		store:        cache.NewStore(),
	}
	f.svc = service.NewInviteService(
		f.inviteRepo,
		f.memberRepo,
		f.orgRepo,
		f.supplierRepo,
		f.notifRepo,
		f.emailSender,
		f.store,
		config.InviteConfig{ExpiryHours: 72},
		config.EmailConfig{FrontendURL: "https://app.setflow.com"},
	)
	return f
}

func adminClaims(orgID uuid.UUID) *service.Claims {
	return &service.Claims{
		OrgID:    orgID,
		MemberID: uuid.New(),
		Email:    "bruno@lumafilms.com",
		Role:     domain.RoleAdmin,
	}
}

func TestInviteServiceCreate_Success(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", SeatLimit: 0, IsActive: true}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("GetPendingByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invite")).Return(nil)
	f.emailSender.On("SendInviteEmail", mock.Anything, "joao@freelance.com", "Luma Films", "freelancer", mock.AnythingOfType("string")).Return(nil)

	out, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "joao@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusPending, out.Invite.Status)
	assert.Equal(t, actor.MemberID, out.Invite.InvitedBy)
	assert.Contains(t, out.Link, "https://app.setflow.com/invites/accept?token=")
	assert.Empty(t, out.Warning)
	assert.NotEmpty(t, out.Invite.TokenHash)
	assert.WithinDuration(t, time.Now().UTC().Add(72*time.Hour), out.Invite.ExpiresAt, time.Minute)

	f.inviteRepo.AssertExpectations(t)
	f.emailSender.AssertExpectations(t)
}

func TestInviteServiceCreate_DuplicateMemberEmail(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", IsActive: true}
	existing := &domain.Member{ID: uuid.New(), OrgID: orgID, Email: "joao@freelance.com"}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(existing, nil)

	_, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "joao@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	f.inviteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInviteServiceCreate_DuplicatePendingInvite(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", IsActive: true}
	pending := &domain.Invite{ID: uuid.New(), OrgID: orgID, Email: "joao@freelance.com", Status: domain.InviteStatusPending}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("GetPendingByEmail", mock.Anything, orgID, "joao@freelance.com").Return(pending, nil)

	_, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "joao@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateInvite)
}

func TestInviteServiceCreate_SeatLimitExceeded(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", SeatLimit: 5, AllowSeatOverage: false, IsActive: true}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "extra@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("GetPendingByEmail", mock.Anything, orgID, "extra@freelance.com").Return(nil, domain.ErrNotFound)
	f.memberRepo.On("CountActive", mock.Anything, orgID).Return(4, nil)
	f.inviteRepo.On("CountPending", mock.Anything, orgID).Return(1, nil)

	_, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "extra@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	assert.ErrorIs(t, err, domain.ErrSeatLimitExceeded)
	f.inviteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.emailSender.AssertNotCalled(t, "SendInviteEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInviteServiceCreate_SeatOverageWarning(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", SeatLimit: 5, AllowSeatOverage: true, IsActive: true}

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "extra@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("GetPendingByEmail", mock.Anything, orgID, "extra@freelance.com").Return(nil, domain.ErrNotFound)
	f.memberRepo.On("CountActive", mock.Anything, orgID).Return(5, nil)
	f.inviteRepo.On("CountPending", mock.Anything, orgID).Return(0, nil)
	f.inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invite")).Return(nil)
	f.emailSender.On("SendInviteEmail", mock.Anything, "extra@freelance.com", "Luma Films", "freelancer", mock.AnythingOfType("string")).Return(nil)

	out, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "extra@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	require.NoError(t, err)
	assert.Contains(t, out.Warning, "seat limit")
}

func TestInviteServiceCreate_InsufficientRole(t *testing.T) {
	f := newInviteFixture()

	actor := &service.Claims{
		OrgID:    uuid.New(),
		MemberID: uuid.New(),
		Role:     domain.RoleProducer,
	}

	// A producer cannot hand out an admin seat.
	_, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "new@lumafilms.com",
		Role:  domain.RoleAdmin,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	f.orgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestInviteServiceAccept_Success(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	invitedBy := uuid.New()
	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     orgID,
		Email:     "joao@freelance.com",
		Role:      domain.RoleFreelancer,
		Status:    domain.InviteStatusPending,
		TokenHash: service.HashInviteToken("rawtoken"),
		InvitedBy: invitedBy,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}

	f.inviteRepo.On("GetByTokenHash", mock.Anything, service.HashInviteToken("rawtoken")).Return(invite, nil)
	f.memberRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Member")).Return(nil)
	f.inviteRepo.On("Update", mock.Anything, invite).Return(nil)
	f.supplierRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.MemberID == invitedBy && n.Kind == domain.NotificationInviteAccepted
	})).Return(nil)

	member, err := f.svc.Accept(context.Background(), service.AcceptInviteInput{
		Token:    "rawtoken",
		FullName: "Joao Souza",
		Password: "securepassword123",
	})

	require.NoError(t, err)
	assert.Equal(t, orgID, member.OrgID)
	assert.Equal(t, domain.RoleFreelancer, member.EffectiveRole)
	assert.True(t, member.IsActive)
	assert.NotEqual(t, "securepassword123", member.PasswordHash)
	assert.Equal(t, domain.InviteStatusAccepted, invite.Status)
	require.NotNil(t, invite.AcceptedAt)

	f.notifRepo.AssertExpectations(t)
}

func TestInviteServiceAccept_LinksSupplierProfile(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     orgID,
		Email:     "joao@freelance.com",
		Role:      domain.RoleFreelancer,
		Status:    domain.InviteStatusPending,
		TokenHash: service.HashInviteToken("rawtoken"),
		InvitedBy: uuid.New(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
	supplier := &domain.Supplier{
		ID:       uuid.New(),
		OrgID:    orgID,
		Name:     "Joao Souza",
		Email:    "joao@freelance.com",
		Category: domain.SupplierCategoryCrew,
	}

	f.inviteRepo.On("GetByTokenHash", mock.Anything, mock.AnythingOfType("string")).Return(invite, nil)
	f.memberRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Member")).Return(nil)
	f.inviteRepo.On("Update", mock.Anything, invite).Return(nil)
	f.supplierRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(supplier, nil)
	f.supplierRepo.On("Update", mock.Anything, supplier).Return(nil)
	f.notifRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	member, err := f.svc.Accept(context.Background(), service.AcceptInviteInput{
		Token:    "rawtoken",
		FullName: "Joao Souza",
		Password: "securepassword123",
	})

	require.NoError(t, err)
	require.NotNil(t, supplier.ProfileID)
	assert.Equal(t, member.ID, *supplier.ProfileID)
	f.supplierRepo.AssertExpectations(t)
}

func TestInviteServiceAccept_ExpiredAtRead(t *testing.T) {
	f := newInviteFixture()

	// Still pending in storage but past its deadline; acceptance must
	// settle the row to expired.
	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     uuid.New(),
		Email:     "joao@freelance.com",
		Role:      domain.RoleFreelancer,
		Status:    domain.InviteStatusPending,
		TokenHash: service.HashInviteToken("staletoken"),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}

	f.inviteRepo.On("GetByTokenHash", mock.Anything, mock.AnythingOfType("string")).Return(invite, nil)
	f.inviteRepo.On("Update", mock.Anything, invite).Return(nil)

	_, err := f.svc.Accept(context.Background(), service.AcceptInviteInput{
		Token:    "staletoken",
		FullName: "Joao Souza",
		Password: "securepassword123",
	})

	assert.ErrorIs(t, err, domain.ErrInviteExpired)
	assert.Equal(t, domain.InviteStatusExpired, invite.Status)
	f.memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.inviteRepo.AssertExpectations(t)
}

func TestInviteServiceAccept_InvalidToken(t *testing.T) {
	f := newInviteFixture()

	f.inviteRepo.On("GetByTokenHash", mock.Anything, mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Accept(context.Background(), service.AcceptInviteInput{
		Token:    "bogus",
		FullName: "Joao Souza",
		Password: "securepassword123",
	})

	assert.ErrorIs(t, err, domain.ErrInviteTokenInvalid)
}

func TestInviteServiceAccept_AlreadyAccepted(t *testing.T) {
	f := newInviteFixture()

	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     uuid.New(),
		Status:    domain.InviteStatusAccepted,
		TokenHash: service.HashInviteToken("usedtoken"),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}

	f.inviteRepo.On("GetByTokenHash", mock.Anything, mock.AnythingOfType("string")).Return(invite, nil)

	_, err := f.svc.Accept(context.Background(), service.AcceptInviteInput{
		Token:    "usedtoken",
		FullName: "Joao Souza",
		Password: "securepassword123",
	})

	assert.ErrorIs(t, err, domain.ErrInviteNotPending)
}

func TestInviteServiceRevoke_Idempotent(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	invite := &domain.Invite{
		ID:     uuid.New(),
		OrgID:  orgID,
		Role:   domain.RoleFreelancer,
		Status: domain.InviteStatusRevoked,
	}

	f.inviteRepo.On("GetByID", mock.Anything, orgID, invite.ID).Return(invite, nil)

	got, err := f.svc.Revoke(context.Background(), actor, invite.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusRevoked, got.Status)
	f.inviteRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInviteServiceRevoke_AcceptedInvite(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	invite := &domain.Invite{
		ID:     uuid.New(),
		OrgID:  orgID,
		Role:   domain.RoleFreelancer,
		Status: domain.InviteStatusAccepted,
	}

	f.inviteRepo.On("GetByID", mock.Anything, orgID, invite.ID).Return(invite, nil)

	_, err := f.svc.Revoke(context.Background(), actor, invite.ID)

	assert.ErrorIs(t, err, domain.ErrInviteNotPending)
}

func TestInviteServiceResend_RotatesToken(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	oldHash := service.HashInviteToken("oldtoken")
	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     orgID,
		Email:     "joao@freelance.com",
		Role:      domain.RoleFreelancer,
		Status:    domain.InviteStatusPending,
		TokenHash: oldHash,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	org := &domain.Organization{ID: orgID, Name: "Luma Films", IsActive: true}

	f.inviteRepo.On("GetByID", mock.Anything, orgID, invite.ID).Return(invite, nil)
	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.inviteRepo.On("Update", mock.Anything, invite).Return(nil)
	f.emailSender.On("SendInviteEmail", mock.Anything, "joao@freelance.com", "Luma Films", "freelancer", mock.AnythingOfType("string")).Return(nil)

	out, err := f.svc.Resend(context.Background(), actor, invite.ID)

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, out.Invite.TokenHash)
	assert.WithinDuration(t, time.Now().UTC().Add(72*time.Hour), out.Invite.ExpiresAt, time.Minute)
	f.emailSender.AssertExpectations(t)
}

func TestInviteServiceResend_NonPending(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	invite := &domain.Invite{
		ID:     uuid.New(),
		OrgID:  orgID,
		Role:   domain.RoleFreelancer,
		Status: domain.InviteStatusRevoked,
	}

	f.inviteRepo.On("GetByID", mock.Anything, orgID, invite.ID).Return(invite, nil)

	_, err := f.svc.Resend(context.Background(), actor, invite.ID)

	assert.ErrorIs(t, err, domain.ErrInviteNotPending)
	f.emailSender.AssertNotCalled(t, "SendInviteEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInviteServiceResend_ConcurrentCallsSendOnce(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	invite := &domain.Invite{
		ID:        uuid.New(),
		OrgID:     orgID,
		Email:     "joao@freelance.com",
		Role:      domain.RoleFreelancer,
		Status:    domain.InviteStatusPending,
		TokenHash: service.HashInviteToken("oldtoken"),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	org := &domain.Organization{ID: orgID, Name: "Luma Films", IsActive: true}

	// Hold the first send open until the second caller has joined, so
	// both requests overlap and collapse into a single flight.
	entered := make(chan struct{}, 2)
	release := make(chan struct{})

	f.inviteRepo.On("GetByID", mock.Anything, orgID, invite.ID).Return(invite, nil)
	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.inviteRepo.On("Update", mock.Anything, invite).Return(nil)
	f.emailSender.On("SendInviteEmail", mock.Anything, "joao@freelance.com", "Luma Films", "freelancer", mock.AnythingOfType("string")).
		Return(nil).
		Run(func(mock.Arguments) {
			entered <- struct{}{}
			<-release
		})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = f.svc.Resend(context.Background(), actor, invite.ID)
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = f.svc.Resend(context.Background(), actor, invite.ID)
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	f.inviteRepo.AssertNumberOfCalls(t, "Update", 1)
	f.emailSender.AssertNumberOfCalls(t, "SendInviteEmail", 1)
}

func TestInviteServiceCreate_EmailFailureStillDropsCachedList(t *testing.T) {
	f := newInviteFixture()

	orgID := uuid.New()
	actor := adminClaims(orgID)
	org := &domain.Organization{ID: orgID, Name: "Luma Films", IsActive: true}

	f.store.Put(orgID, cache.CollectionInvites, "stale-invite-page")

	f.orgRepo.On("GetByID", mock.Anything, orgID).Return(org, nil)
	f.memberRepo.On("GetByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("GetPendingByEmail", mock.Anything, orgID, "joao@freelance.com").Return(nil, domain.ErrNotFound)
	f.inviteRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invite")).Return(nil)
	f.emailSender.On("SendInviteEmail", mock.Anything, "joao@freelance.com", "Luma Films", "freelancer", mock.AnythingOfType("string")).
		Return(errors.New("smtp unavailable"))

	_, err := f.svc.Create(context.Background(), actor, service.CreateInviteInput{
		Email: "joao@freelance.com",
		Role:  domain.RoleFreelancer,
	})

	// The invite row was created, so the cached list is stale even
	// though the email never went out.
	require.Error(t, err)
	_, ok := f.store.Get(orgID, cache.CollectionInvites)
	assert.False(t, ok)
}
