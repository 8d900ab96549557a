package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"setflow/internal/cache"
	"setflow/internal/config"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateInviteInput is the DTO for creating an invite.
type CreateInviteInput struct {
	Email string      `json:"email" binding:"required,email"`
	Role  domain.Role `json:"role" binding:"required"`
}

// InviteOutput is returned from invite writes. Link carries the raw
// acceptance URL so callers can copy it; the raw token is never stored.
// Warning is set when the invite was created past the seat limit.
type InviteOutput struct {
	Invite  *domain.Invite `json:"invite"`
	Link    string         `json:"link,omitempty"`
	Warning string         `json:"warning,omitempty"`
}

// AcceptInviteInput is the DTO for accepting an invite.
type AcceptInviteInput struct {
	Token    string `json:"token" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// InviteService defines the team invitation contract.
type InviteService interface {
	Create(ctx context.Context, actor *Claims, input CreateInviteInput) (*InviteOutput, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invite, int, error)
	Resend(ctx context.Context, actor *Claims, inviteID uuid.UUID) (*InviteOutput, error)
	Revoke(ctx context.Context, actor *Claims, inviteID uuid.UUID) (*domain.Invite, error)
	Accept(ctx context.Context, input AcceptInviteInput) (*domain.Member, error)
}

type inviteService struct {
	inviteRepo   port.InviteRepository
	memberRepo   port.MemberRepository
	orgRepo      port.OrganizationRepository
	supplierRepo port.SupplierRepository
	notifRepo    port.NotificationRepository
	emailSender  port.EmailSender
	store        *cache.Store
	expiry       time.Duration
	frontendURL  string
	resendGroup  singleflight.Group
}

// NewInviteService creates a new InviteService implementation.
func NewInviteService(
	inviteRepo port.InviteRepository,
	memberRepo port.MemberRepository,
	orgRepo port.OrganizationRepository,
	supplierRepo port.SupplierRepository,
	notifRepo port.NotificationRepository,
	emailSender port.EmailSender,
	store *cache.Store,
	inviteCfg config.InviteConfig,
	emailCfg config.EmailConfig,
) InviteService {
	return &inviteService{
		inviteRepo:   inviteRepo,
		memberRepo:   memberRepo,
		orgRepo:      orgRepo,
		supplierRepo: supplierRepo,
		notifRepo:    notifRepo,
		emailSender:  emailSender,
		store:        store,
		expiry:       inviteCfg.Expiry(),
		frontendURL:  emailCfg.FrontendURL,
	}
}

// newInviteToken returns a raw token and its stored hash. Only the hash
// is persisted; the raw token travels in the invite email.
func newInviteToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating invite token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashInviteToken(raw), nil
}

// HashInviteToken returns the storage form of a raw invite token.
func HashInviteToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *inviteService) inviteLink(rawToken string) string {
	return fmt.Sprintf("%s/invites/accept?token=%s", s.frontendURL, rawToken)
}

func (s *inviteService) Create(ctx context.Context, actor *Claims, input CreateInviteInput) (*InviteOutput, error) {
	if !domain.ValidRoles[input.Role] || !domain.CanInvite(actor.Role, input.Role) {
		return nil, domain.ErrInsufficientRole
	}

	org, err := s.orgRepo.GetByID(ctx, actor.OrgID)
	if err != nil {
		return nil, err
	}

	// An active member with this email makes the invite pointless.
	if _, err := s.memberRepo.GetByEmail(ctx, actor.OrgID, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invite.Create: %w", err)
	}

	if _, err := s.inviteRepo.GetPendingByEmail(ctx, actor.OrgID, input.Email); err == nil {
		return nil, domain.ErrDuplicateInvite
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invite.Create: %w", err)
	}

	// Seat accounting counts active members plus pending invites.
	var warning string
	if org.SeatLimit > 0 {
		active, err := s.memberRepo.CountActive(ctx, actor.OrgID)
		if err != nil {
			return nil, fmt.Errorf("invite.Create: %w", err)
		}
		pending, err := s.inviteRepo.CountPending(ctx, actor.OrgID)
		if err != nil {
			return nil, fmt.Errorf("invite.Create: %w", err)
		}
		if active+pending >= org.SeatLimit {
			if !org.AllowSeatOverage {
				return nil, domain.ErrSeatLimitExceeded
			}
			warning = fmt.Sprintf("organization is over its seat limit of %d", org.SeatLimit)
		}
	}

	rawToken, tokenHash, err := newInviteToken()
	if err != nil {
		return nil, err
	}

	invite := &domain.Invite{
		OrgID:     actor.OrgID,
		Email:     input.Email,
		Role:      input.Role,
		Status:    domain.InviteStatusPending,
		TokenHash: tokenHash,
		InvitedBy: actor.MemberID,
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err // ErrDuplicateInvite propagates from the partial unique index
	}
	// The invite row exists whether or not the email goes out; cached
	// lists must not hide it behind a failed send.
	s.store.Invalidate(actor.OrgID, cache.MutationInviteWrite)

	if err := s.emailSender.SendInviteEmail(ctx, invite.Email, org.Name, string(invite.Role), rawToken); err != nil {
		return nil, fmt.Errorf("sending invite email: %w", err)
	}

	return &InviteOutput{
		Invite:  invite,
		Link:    s.inviteLink(rawToken),
		Warning: warning,
	}, nil
}

func (s *inviteService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invite, int, error) {
	return s.inviteRepo.ListByOrg(ctx, orgID, offset, limit)
}

// Resend rotates the invite token and re-sends the email. Concurrent
// resends for the same invite are collapsed into one send.
func (s *inviteService) Resend(ctx context.Context, actor *Claims, inviteID uuid.UUID) (*InviteOutput, error) {
	key := actor.OrgID.String() + "/" + inviteID.String()
	v, err, _ := s.resendGroup.Do(key, func() (interface{}, error) {
		return s.resend(ctx, actor, inviteID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*InviteOutput), nil
}

func (s *inviteService) resend(ctx context.Context, actor *Claims, inviteID uuid.UUID) (*InviteOutput, error) {
	invite, err := s.inviteRepo.GetByID(ctx, actor.OrgID, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status != domain.InviteStatusPending {
		return nil, domain.ErrInviteNotPending
	}
	if !domain.CanInvite(actor.Role, invite.Role) {
		return nil, domain.ErrInsufficientRole
	}

	org, err := s.orgRepo.GetByID(ctx, actor.OrgID)
	if err != nil {
		return nil, err
	}

	rawToken, tokenHash, err := newInviteToken()
	if err != nil {
		return nil, err
	}
	invite.TokenHash = tokenHash
	invite.ExpiresAt = time.Now().UTC().Add(s.expiry)
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationInviteWrite)

	if err := s.emailSender.SendInviteEmail(ctx, invite.Email, org.Name, string(invite.Role), rawToken); err != nil {
		return nil, fmt.Errorf("sending invite email: %w", err)
	}

	return &InviteOutput{Invite: invite, Link: s.inviteLink(rawToken)}, nil
}

// Revoke moves a pending invite to revoked. Revoking an already revoked
// invite is a no-op so retried requests stay safe.
func (s *inviteService) Revoke(ctx context.Context, actor *Claims, inviteID uuid.UUID) (*domain.Invite, error) {
	invite, err := s.inviteRepo.GetByID(ctx, actor.OrgID, inviteID)
	if err != nil {
		return nil, err
	}
	if invite.Status == domain.InviteStatusRevoked {
		return invite, nil
	}
	if invite.Status != domain.InviteStatusPending {
		return nil, domain.ErrInviteNotPending
	}
	if !domain.CanInvite(actor.Role, invite.Role) {
		return nil, domain.ErrInsufficientRole
	}

	invite.Status = domain.InviteStatusRevoked
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationInviteWrite)
	return invite, nil
}

func (s *inviteService) Accept(ctx context.Context, input AcceptInviteInput) (*domain.Member, error) {
	invite, err := s.inviteRepo.GetByTokenHash(ctx, HashInviteToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInviteTokenInvalid
		}
		return nil, fmt.Errorf("invite.Accept: %w", err)
	}

	switch invite.Status {
	case domain.InviteStatusPending:
	case domain.InviteStatusExpired:
		return nil, domain.ErrInviteExpired
	default:
		return nil, domain.ErrInviteNotPending
	}

	now := time.Now().UTC()
	if invite.IsExpired(now) {
		// The sweeper has not caught it yet; settle its state here.
		invite.Status = domain.InviteStatusExpired
		if err := s.inviteRepo.Update(ctx, invite); err != nil {
			return nil, err
		}
		return nil, domain.ErrInviteExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	member := &domain.Member{
		OrgID:         invite.OrgID,
		Email:         invite.Email,
		PasswordHash:  string(hash),
		FullName:      input.FullName,
		EffectiveRole: invite.Role,
		IsActive:      true,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	invite.Status = domain.InviteStatusAccepted
	invite.AcceptedAt = &now
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, err
	}

	// Link a supplier record carrying the same email to the new profile.
	if supplier, err := s.supplierRepo.GetByEmail(ctx, invite.OrgID, invite.Email); err == nil {
		if supplier.ProfileID == nil {
			supplier.ProfileID = &member.ID
			if err := s.supplierRepo.Update(ctx, supplier); err != nil {
				return nil, fmt.Errorf("linking supplier: %w", err)
			}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invite.Accept: %w", err)
	}

	notif := &domain.Notification{
		OrgID:    invite.OrgID,
		MemberID: invite.InvitedBy,
		Kind:     domain.NotificationInviteAccepted,
		Message:  fmt.Sprintf("%s accepted your invitation", invite.Email),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	s.store.Invalidate(invite.OrgID, cache.MutationInviteAccepted)
	return member, nil
}
