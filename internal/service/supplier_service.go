package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateSupplierInput is the DTO for creating a supplier.
type CreateSupplierInput struct {
	Name     string                  `json:"name" binding:"required"`
	Category domain.SupplierCategory `json:"category" binding:"required"`
	Email    string                  `json:"email" binding:"omitempty,email"`
	Phone    string                  `json:"phone"`
	Notes    string                  `json:"notes"`
}

// UpdateSupplierInput is the DTO for updating a supplier.
type UpdateSupplierInput struct {
	Name     *string                  `json:"name"`
	Category *domain.SupplierCategory `json:"category"`
	Email    *string                  `json:"email" binding:"omitempty,email"`
	Phone    *string                  `json:"phone"`
	Notes    *string                  `json:"notes"`
}

// SupplierService defines the supplier management contract.
type SupplierService interface {
	Create(ctx context.Context, orgID uuid.UUID, input CreateSupplierInput) (*domain.Supplier, error)
	GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, orgID uuid.UUID, category domain.SupplierCategory, offset, limit int) ([]domain.Supplier, int, error)
	Update(ctx context.Context, orgID, supplierID uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, orgID, supplierID uuid.UUID) error
	// LinkProfile attaches a member profile to the supplier record.
	LinkProfile(ctx context.Context, orgID, supplierID, memberID uuid.UUID) (*domain.Supplier, error)
}

type supplierService struct {
	supplierRepo port.SupplierRepository
	memberRepo   port.MemberRepository
	store        *cache.Store
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(supplierRepo port.SupplierRepository, memberRepo port.MemberRepository, store *cache.Store) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, memberRepo: memberRepo, store: store}
}

func (s *supplierService) Create(ctx context.Context, orgID uuid.UUID, input CreateSupplierInput) (*domain.Supplier, error) {
	if !domain.ValidSupplierCategories[input.Category] {
		input.Category = domain.SupplierCategoryOther
	}

	supplier := &domain.Supplier{
		OrgID:    orgID,
		Name:     input.Name,
		Category: input.Category,
		Email:    input.Email,
		Phone:    input.Phone,
		Notes:    input.Notes,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationSupplierWrite)
	return supplier, nil
}

func (s *supplierService) GetByID(ctx context.Context, orgID, supplierID uuid.UUID) (*domain.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, orgID, supplierID)
}

func (s *supplierService) List(ctx context.Context, orgID uuid.UUID, category domain.SupplierCategory, offset, limit int) ([]domain.Supplier, int, error) {
	return s.supplierRepo.ListByOrg(ctx, orgID, category, offset, limit)
}

func (s *supplierService) Update(ctx context.Context, orgID, supplierID uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.Category != nil && domain.ValidSupplierCategories[*input.Category] {
		supplier.Category = *input.Category
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Notes != nil {
		supplier.Notes = *input.Notes
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationSupplierWrite)
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, orgID, supplierID uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, orgID, supplierID); err != nil {
		return err
	}
	s.store.Invalidate(orgID, cache.MutationSupplierWrite)
	return nil
}

func (s *supplierService) LinkProfile(ctx context.Context, orgID, supplierID, memberID uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier.ProfileID != nil {
		return nil, domain.ErrSupplierAlreadyLinked
	}
	member, err := s.memberRepo.GetByID(ctx, orgID, memberID)
	if err != nil {
		return nil, err
	}

	supplier.ProfileID = &member.ID
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationSupplierWrite)
	return supplier, nil
}
