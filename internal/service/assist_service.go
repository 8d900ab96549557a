package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"setflow/internal/assist"
	"setflow/internal/domain"
	"setflow/internal/port"
)

// AssistInput is the DTO for assistant requests. ProjectID and
// ShootingDayID optionally scope the task to existing records, whose
// details are folded into the payload sent to the provider.
type AssistInput struct {
	Task          string     `json:"task" binding:"required"`
	Prompt        string     `json:"prompt" binding:"required"`
	ProjectID     *uuid.UUID `json:"project_id"`
	ShootingDayID *uuid.UUID `json:"shooting_day_id"`
}

// AssistService defines the thin AI assistance contract.
type AssistService interface {
	Complete(ctx context.Context, orgID uuid.UUID, input AssistInput) (*port.AssistResponse, error)
}

type assistService struct {
	assistant   port.Assistant
	projectRepo port.ProjectRepository
	dayRepo     port.ShootingDayRepository
	catalogRepo port.CatalogServiceRepository
}

// NewAssistService creates a new AssistService implementation. A nil
// assistant disables the feature; requests then fail as unavailable.
func NewAssistService(
	assistant port.Assistant,
	projectRepo port.ProjectRepository,
	dayRepo port.ShootingDayRepository,
	catalogRepo port.CatalogServiceRepository,
) AssistService {
	return &assistService{
		assistant:   assistant,
		projectRepo: projectRepo,
		dayRepo:     dayRepo,
		catalogRepo: catalogRepo,
	}
}

func (s *assistService) Complete(ctx context.Context, orgID uuid.UUID, input AssistInput) (*port.AssistResponse, error) {
	if s.assistant == nil {
		return nil, domain.ErrAssistUnavailable
	}
	if !assist.ValidTasks[input.Task] {
		return nil, fmt.Errorf("%w: unknown task %q", domain.ErrAssistUnavailable, input.Task)
	}

	payload, err := s.buildPayload(ctx, orgID, input)
	if err != nil {
		return nil, err
	}

	resp, err := s.assistant.Complete(ctx, port.AssistRequest{
		Task:    input.Task,
		Prompt:  input.Prompt,
		Payload: payload,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssistUnavailable, err)
	}
	return resp, nil
}

// buildPayload folds referenced records into a plain-text context block.
func (s *assistService) buildPayload(ctx context.Context, orgID uuid.UUID, input AssistInput) (string, error) {
	var b strings.Builder

	if input.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, orgID, *input.ProjectID)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Project: %s (status %s, budget %s)\n",
			project.Name, project.Status, project.BudgetCents)
	}

	if input.ShootingDayID != nil {
		day, err := s.dayRepo.GetByID(ctx, orgID, *input.ShootingDayID)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Shooting day: %s, call %s, wrap %s, location %s\n",
			day.Date.Format("2006-01-02"), day.CallTime, day.WrapTime, day.Location)
		if day.Notes != "" {
			fmt.Fprintf(&b, "Day notes: %s\n", day.Notes)
		}
	}

	if input.Task == assist.TaskBudgetEstimate {
		services, _, err := s.catalogRepo.ListByOrg(ctx, orgID, 0, 100)
		if err != nil {
			return "", err
		}
		if len(services) > 0 {
			b.WriteString("Catalog rates:\n")
			for _, svc := range services {
				fmt.Fprintf(&b, "- %s: %s\n", svc.Name, svc.RateCents)
			}
		}
	}

	return b.String(), nil
}
