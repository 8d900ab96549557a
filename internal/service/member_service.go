package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// UpdateMemberRoleInput is the DTO for changing a member's effective role.
type UpdateMemberRoleInput struct {
	Role domain.Role `json:"role" binding:"required"`
}

// UpdateProfileInput is the DTO for a member updating their own profile.
type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
}

// MemberService defines the team management contract.
type MemberService interface {
	GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*domain.Member, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Member, int, error)
	UpdateRole(ctx context.Context, actor *Claims, memberID uuid.UUID, input UpdateMemberRoleInput) (*domain.Member, error)
	UpdateProfile(ctx context.Context, orgID, memberID uuid.UUID, input UpdateProfileInput) (*domain.Member, error)
	Remove(ctx context.Context, actor *Claims, memberID uuid.UUID) error
}

type memberService struct {
	memberRepo port.MemberRepository
	store      *cache.Store
}

// NewMemberService creates a new MemberService implementation.
func NewMemberService(memberRepo port.MemberRepository, store *cache.Store) MemberService {
	return &memberService{memberRepo: memberRepo, store: store}
}

func (s *memberService) GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, orgID, memberID)
}

// memberListSnapshot is the cached result of a member list page.
type memberListSnapshot struct {
	members []domain.Member
	total   int
	offset  int
	limit   int
}

// List serves repeated reads of the same page from the org's cached
// snapshot; any member write drops it through the invalidation table.
func (s *memberService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Member, int, error) {
	if v, ok := s.store.Get(orgID, cache.CollectionMembers); ok {
		if snap, ok := v.(memberListSnapshot); ok && snap.offset == offset && snap.limit == limit {
			return snap.members, snap.total, nil
		}
	}

	members, total, err := s.memberRepo.ListByOrg(ctx, orgID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	s.store.Put(orgID, cache.CollectionMembers, memberListSnapshot{
		members: members,
		total:   total,
		offset:  offset,
		limit:   limit,
	})
	return members, total, nil
}

func (s *memberService) UpdateRole(ctx context.Context, actor *Claims, memberID uuid.UUID, input UpdateMemberRoleInput) (*domain.Member, error) {
	if !domain.CanChangeMemberRole(actor.Role) {
		return nil, domain.ErrInsufficientRole
	}
	if !domain.ValidRoles[input.Role] {
		return nil, domain.ErrInsufficientRole
	}

	member, err := s.memberRepo.GetByID(ctx, actor.OrgID, memberID)
	if err != nil {
		return nil, err
	}
	if member.IsMasterOwner {
		return nil, domain.ErrMasterOwnerImmutable
	}

	member.EffectiveRole = input.Role
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationMemberWrite)
	return member, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, orgID, memberID uuid.UUID, input UpdateProfileInput) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, orgID, memberID)
	if err != nil {
		return nil, err
	}
	if input.FullName != nil {
		member.FullName = *input.FullName
	}
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationMemberWrite)
	return member, nil
}

func (s *memberService) Remove(ctx context.Context, actor *Claims, memberID uuid.UUID) error {
	member, err := s.memberRepo.GetByID(ctx, actor.OrgID, memberID)
	if err != nil {
		return err
	}

	isSelf := actor.MemberID == member.ID
	if member.IsMasterOwner {
		return domain.ErrMasterOwnerImmutable
	}
	if isSelf {
		return domain.ErrSelfRemoval
	}
	if !domain.CanRemoveMember(actor.Role, isSelf, member.IsMasterOwner, member.EffectiveRole) {
		return domain.ErrInsufficientRole
	}

	if err := s.memberRepo.Delete(ctx, actor.OrgID, memberID); err != nil {
		return err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationMemberWrite)
	return nil
}
