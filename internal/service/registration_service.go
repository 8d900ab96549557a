package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"setflow/internal/domain"
	"setflow/internal/port"
)

// RegisterInput is the DTO for organization self-registration.
type RegisterInput struct {
	OrgName  string `json:"org_name" binding:"required"`
	OrgSlug  string `json:"org_slug" binding:"required,min=3"`
	Currency string `json:"currency"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// RegisterOutput contains the results of a successful registration.
type RegisterOutput struct {
	Organization *domain.Organization `json:"organization"`
	Member       *domain.Member       `json:"member"`
	Tokens       *TokenPair           `json:"tokens"`
}

// RegistrationService defines the organization self-registration contract.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
}

type registrationService struct {
	orgRepo    port.OrganizationRepository
	memberRepo port.MemberRepository
	authSvc    AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	orgRepo port.OrganizationRepository,
	memberRepo port.MemberRepository,
	authSvc AuthService,
) RegistrationService {
	return &registrationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		authSvc:    authSvc,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	currency := input.Currency
	if currency == "" {
		currency = "BRL"
	}

	org := &domain.Organization{
		Name:     input.OrgName,
		Slug:     input.OrgSlug,
		Currency: currency,
		IsActive: true,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err // ErrDuplicateSlug propagates naturally
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	// The founding member is the organization's master owner. The master
	// owner can never be removed or demoted.
	member := &domain.Member{
		OrgID:         org.ID,
		Email:         input.Email,
		PasswordHash:  string(hash),
		FullName:      input.FullName,
		EffectiveRole: domain.RoleOwner,
		IsMasterOwner: true,
		IsActive:      true,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	org.MasterOwnerProfileID = &member.ID
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("linking master owner: %w", err)
	}

	tokens, err := s.authSvc.Login(ctx, LoginInput{
		OrgSlug:  input.OrgSlug,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &RegisterOutput{
		Organization: org,
		Member:       member,
		Tokens:       tokens,
	}, nil
}
