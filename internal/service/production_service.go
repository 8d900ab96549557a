package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/port"
)

// CreateShootingDayInput is the DTO for scheduling a shooting day.
// Times accept HH:MM or HH:MM:SS and are stored as HH:MM:SS.
type CreateShootingDayInput struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	CallTime  string    `json:"call_time" binding:"required"`
	WrapTime  string    `json:"wrap_time" binding:"required"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
}

// UpdateShootingDayInput is the DTO for updating a shooting day.
type UpdateShootingDayInput struct {
	Date     *time.Time `json:"date"`
	CallTime *string    `json:"call_time"`
	WrapTime *string    `json:"wrap_time"`
	Location *string    `json:"location"`
	Notes    *string    `json:"notes"`
}

// CreateCallSheetInput is the DTO for creating a call sheet.
type CreateCallSheetInput struct {
	ProjectID     uuid.UUID `json:"project_id" binding:"required"`
	ShootingDayID uuid.UUID `json:"shooting_day_id" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	CrewCallTime  string    `json:"crew_call_time" binding:"required"`
	Notes         string    `json:"notes"`
}

// UpdateCallSheetInput is the DTO for updating a call sheet.
type UpdateCallSheetInput struct {
	Title        *string `json:"title"`
	CrewCallTime *string `json:"crew_call_time"`
	Notes        *string `json:"notes"`
}

// ProductionService defines the shooting day and call sheet contract.
type ProductionService interface {
	CreateShootingDay(ctx context.Context, orgID uuid.UUID, input CreateShootingDayInput) (*domain.ShootingDay, error)
	GetShootingDay(ctx context.Context, orgID, dayID uuid.UUID) (*domain.ShootingDay, error)
	ListShootingDays(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.ShootingDay, error)
	UpdateShootingDay(ctx context.Context, orgID, dayID uuid.UUID, input UpdateShootingDayInput) (*domain.ShootingDay, error)
	DeleteShootingDay(ctx context.Context, orgID, dayID uuid.UUID) error

	CreateCallSheet(ctx context.Context, actor *Claims, input CreateCallSheetInput) (*domain.CallSheet, error)
	GetCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error)
	ListCallSheets(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.CallSheet, error)
	UpdateCallSheet(ctx context.Context, orgID, sheetID uuid.UUID, input UpdateCallSheetInput) (*domain.CallSheet, error)
	PublishCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error)
	DeleteCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) error
}

type productionService struct {
	dayRepo     port.ShootingDayRepository
	sheetRepo   port.CallSheetRepository
	projectRepo port.ProjectRepository
}

// NewProductionService creates a new ProductionService implementation.
func NewProductionService(
	dayRepo port.ShootingDayRepository,
	sheetRepo port.CallSheetRepository,
	projectRepo port.ProjectRepository,
) ProductionService {
	return &productionService{
		dayRepo:     dayRepo,
		sheetRepo:   sheetRepo,
		projectRepo: projectRepo,
	}
}

func (s *productionService) CreateShootingDay(ctx context.Context, orgID uuid.UUID, input CreateShootingDayInput) (*domain.ShootingDay, error) {
	if _, err := s.projectRepo.GetByID(ctx, orgID, input.ProjectID); err != nil {
		return nil, err
	}

	callTime, err := domain.NormalizeTimeOfDay(input.CallTime)
	if err != nil {
		return nil, err
	}
	wrapTime, err := domain.NormalizeTimeOfDay(input.WrapTime)
	if err != nil {
		return nil, err
	}

	day := &domain.ShootingDay{
		OrgID:     orgID,
		ProjectID: input.ProjectID,
		Date:      input.Date,
		CallTime:  callTime,
		WrapTime:  wrapTime,
		Location:  input.Location,
		Notes:     input.Notes,
	}
	if err := s.dayRepo.Create(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *productionService) GetShootingDay(ctx context.Context, orgID, dayID uuid.UUID) (*domain.ShootingDay, error) {
	return s.dayRepo.GetByID(ctx, orgID, dayID)
}

func (s *productionService) ListShootingDays(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.ShootingDay, error) {
	return s.dayRepo.ListByProject(ctx, orgID, projectID)
}

func (s *productionService) UpdateShootingDay(ctx context.Context, orgID, dayID uuid.UUID, input UpdateShootingDayInput) (*domain.ShootingDay, error) {
	day, err := s.dayRepo.GetByID(ctx, orgID, dayID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		day.Date = *input.Date
	}
	if input.CallTime != nil {
		callTime, err := domain.NormalizeTimeOfDay(*input.CallTime)
		if err != nil {
			return nil, err
		}
		day.CallTime = callTime
	}
	if input.WrapTime != nil {
		wrapTime, err := domain.NormalizeTimeOfDay(*input.WrapTime)
		if err != nil {
			return nil, err
		}
		day.WrapTime = wrapTime
	}
	if input.Location != nil {
		day.Location = *input.Location
	}
	if input.Notes != nil {
		day.Notes = *input.Notes
	}

	if err := s.dayRepo.Update(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *productionService) DeleteShootingDay(ctx context.Context, orgID, dayID uuid.UUID) error {
	return s.dayRepo.Delete(ctx, orgID, dayID)
}

func (s *productionService) CreateCallSheet(ctx context.Context, actor *Claims, input CreateCallSheetInput) (*domain.CallSheet, error) {
	day, err := s.dayRepo.GetByID(ctx, actor.OrgID, input.ShootingDayID)
	if err != nil {
		return nil, err
	}
	if day.ProjectID != input.ProjectID {
		return nil, domain.ErrNotFound
	}

	crewCall, err := domain.NormalizeTimeOfDay(input.CrewCallTime)
	if err != nil {
		return nil, err
	}

	sheet := &domain.CallSheet{
		OrgID:         actor.OrgID,
		ProjectID:     input.ProjectID,
		ShootingDayID: input.ShootingDayID,
		Title:         input.Title,
		Status:        domain.CallSheetStatusDraft,
		CrewCallTime:  crewCall,
		Notes:         input.Notes,
		CreatedBy:     actor.MemberID,
	}
	if err := s.sheetRepo.Create(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *productionService) GetCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error) {
	return s.sheetRepo.GetByID(ctx, orgID, sheetID)
}

func (s *productionService) ListCallSheets(ctx context.Context, orgID, projectID uuid.UUID) ([]domain.CallSheet, error) {
	return s.sheetRepo.ListByProject(ctx, orgID, projectID)
}

func (s *productionService) UpdateCallSheet(ctx context.Context, orgID, sheetID uuid.UUID, input UpdateCallSheetInput) (*domain.CallSheet, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, orgID, sheetID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		sheet.Title = *input.Title
	}
	if input.CrewCallTime != nil {
		crewCall, err := domain.NormalizeTimeOfDay(*input.CrewCallTime)
		if err != nil {
			return nil, err
		}
		sheet.CrewCallTime = crewCall
	}
	if input.Notes != nil {
		sheet.Notes = *input.Notes
	}

	if err := s.sheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *productionService) PublishCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) (*domain.CallSheet, error) {
	sheet, err := s.sheetRepo.GetByID(ctx, orgID, sheetID)
	if err != nil {
		return nil, err
	}
	sheet.Status = domain.CallSheetStatusPublished
	if err := s.sheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *productionService) DeleteCallSheet(ctx context.Context, orgID, sheetID uuid.UUID) error {
	return s.sheetRepo.Delete(ctx, orgID, sheetID)
}
