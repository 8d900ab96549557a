package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"setflow/internal/config"
	"setflow/internal/domain"
	"setflow/internal/service"
	"setflow/mocks"
)

func newAuthService() (service.AuthService, *mocks.MockMemberRepo, *mocks.MockOrgRepo) {
	memberRepo := new(mocks.MockMemberRepo)
	orgRepo := new(mocks.MockOrgRepo)
	svc := service.NewAuthService(memberRepo, orgRepo, config.JWTConfig{
		Secret:             "test-secret-at-least-32-characters",
		Issuer:             "setflow",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
	return svc, memberRepo, orgRepo
}

func activeOrgAndMember() (*domain.Organization, *domain.Member) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("securepassword123"), bcrypt.MinCost)
	org := &domain.Organization{
		ID:       uuid.New(),
		Name:     "Luma Films",
		Slug:     "luma-films",
		IsActive: true,
	}
	member := &domain.Member{
		ID:            uuid.New(),
		OrgID:         org.ID,
		Email:         "ana@lumafilms.com",
		PasswordHash:  string(hash),
		FullName:      "Ana Ribeiro",
		EffectiveRole: domain.RoleOwner,
		IsActive:      true,
	}
	return org, member
}

func TestAuthLogin_Success(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	// The access token must validate and carry the org context.
	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, org.ID, claims.OrgID)
	assert.Equal(t, member.ID, claims.MemberID)
	assert.Equal(t, domain.RoleOwner, claims.Role)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_UnknownSlug(t *testing.T) {
	svc, _, orgRepo := newAuthService()

	orgRepo.On("GetBySlug", mock.Anything, "nobody").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "nobody",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})

	// Unknown org slugs must be indistinguishable from a bad password.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_InactiveOrganization(t *testing.T) {
	svc, _, orgRepo := newAuthService()
	org, _ := activeOrgAndMember()
	org.IsActive = false

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})

	assert.ErrorIs(t, err, domain.ErrOrganizationInactive)
}

func TestAuthLogin_InactiveMember(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()
	member.IsActive = false

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})

	assert.ErrorIs(t, err, domain.ErrMemberInactive)
}

func TestAuthRefreshToken_Success(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)
	memberRepo.On("GetByID", mock.Anything, org.ID, member.ID).Return(member, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.MemberID)
}

func TestAuthRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthValidateToken_Garbage(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthRefreshToken_MemberGone(t *testing.T) {
	svc, memberRepo, orgRepo := newAuthService()
	org, member := activeOrgAndMember()

	orgRepo.On("GetBySlug", mock.Anything, "luma-films").Return(org, nil)
	memberRepo.On("GetByEmail", mock.Anything, org.ID, "ana@lumafilms.com").Return(member, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	})
	require.NoError(t, err)

	memberRepo.On("GetByID", mock.Anything, org.ID, member.ID).Return(nil, domain.ErrNotFound)

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
