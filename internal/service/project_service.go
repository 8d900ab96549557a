package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"setflow/internal/cache"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateProjectInput is the DTO for creating a standalone project.
// Budget is a decimal string; malformed values parse to zero.
type CreateProjectInput struct {
	ClientID  uuid.UUID  `json:"client_id" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Budget    string     `json:"budget"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateProjectInput is the DTO for updating a project.
type UpdateProjectInput struct {
	Name      *string               `json:"name"`
	Status    *domain.ProjectStatus `json:"status"`
	Budget    *string               `json:"budget"`
	StartDate *time.Time            `json:"start_date"`
	EndDate   *time.Time            `json:"end_date"`
}

// ProjectService defines the project management contract.
type ProjectService interface {
	Create(ctx context.Context, actor *Claims, input CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Project, int, error)
	Update(ctx context.Context, orgID, projectID uuid.UUID, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, orgID, projectID uuid.UUID) error
}

type projectService struct {
	projectRepo port.ProjectRepository
	clientRepo  port.ClientRepository
	store       *cache.Store
}

// NewProjectService creates a new ProjectService implementation.
func NewProjectService(projectRepo port.ProjectRepository, clientRepo port.ClientRepository, store *cache.Store) ProjectService {
	return &projectService{projectRepo: projectRepo, clientRepo: clientRepo, store: store}
}

func (s *projectService) Create(ctx context.Context, actor *Claims, input CreateProjectInput) (*domain.Project, error) {
	if _, err := s.clientRepo.GetByID(ctx, actor.OrgID, input.ClientID); err != nil {
		return nil, err
	}

	project := &domain.Project{
		OrgID:       actor.OrgID,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Status:      domain.ProjectStatusActive,
		BudgetCents: domain.ParseAmount(input.Budget),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   actor.MemberID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	s.store.Invalidate(actor.OrgID, cache.MutationProjectWrite)
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, orgID, projectID uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, orgID, projectID)
}

func (s *projectService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Project, int, error) {
	return s.projectRepo.ListByOrg(ctx, orgID, offset, limit)
}

func (s *projectService) Update(ctx context.Context, orgID, projectID uuid.UUID, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, orgID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Budget != nil {
		project.BudgetCents = domain.ParseAmount(*input.Budget)
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	s.store.Invalidate(orgID, cache.MutationProjectWrite)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, orgID, projectID uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, orgID, projectID); err != nil {
		return err
	}
	s.store.Invalidate(orgID, cache.MutationProjectWrite)
	return nil
}
