package service

import (
	"context"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateClientInput is the DTO for creating a client.
type CreateClientInput struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// UpdateClientInput is the DTO for updating a client.
type UpdateClientInput struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

// ClientService defines the client management contract.
type ClientService interface {
	Create(ctx context.Context, orgID uuid.UUID, input CreateClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, orgID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, orgID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, orgID, clientID uuid.UUID) error
}

type clientService struct {
	repo  port.ClientRepository
	store *cache.Store
}

// NewClientService creates a new ClientService implementation.
func NewClientService(repo port.ClientRepository, store *cache.Store) ClientService {
	return &clientService{repo: repo, store: store}
}

func (s *clientService) Create(ctx context.Context, orgID uuid.UUID, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		OrgID:   orgID,
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Notes:   input.Notes,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationClientWrite)
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, orgID, clientID uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, orgID, clientID)
}

func (s *clientService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	return s.repo.ListByOrg(ctx, orgID, offset, limit)
}

func (s *clientService) Update(ctx context.Context, orgID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationClientWrite)
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, orgID, clientID uuid.UUID) error {
	if err := s.repo.Delete(ctx, orgID, clientID); err != nil {
		return err
	}
	s.store.Invalidate(orgID, cache.MutationClientWrite)
	return nil
}
