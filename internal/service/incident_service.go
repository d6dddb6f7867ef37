package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phuoclv264/katrina-one-sub004/internal/dto"
	"github.com/phuoclv264/katrina-one-sub004/internal/model"
	"github.com/phuoclv264/katrina-one-sub004/internal/reconcile"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
)

type IncidentService interface {
	Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.IncidentRequest) (*dto.IncidentResponse, error)
	List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.IncidentResponse, error)
	Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.IncidentRequest) (*dto.IncidentResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type incidentService struct {
	repo      repository.IncidentRepository
	shiftRepo repository.ShiftRepository
}

func NewIncidentService(repo repository.IncidentRepository, shiftRepo repository.ShiftRepository) IncidentService {
	return &incidentService{repo: repo, shiftRepo: shiftRepo}
}

func (s *incidentService) Create(ctx context.Context, period reconcile.ReportingPeriod, actor Actor, req dto.IncidentRequest) (*dto.IncidentResponse, error) {
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}

	incident := &model.IncidentReport{
		BusinessDate:  period.String(),
		Title:         req.Title,
		Description:   req.Description,
		Severity:      req.Severity,
		PhotoIDs:      req.PhotoIDs,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, err
	}
	resp := incidentToResponse(incident)
	return &resp, nil
}

func (s *incidentService) List(ctx context.Context, period reconcile.ReportingPeriod) ([]dto.IncidentResponse, error) {
	incidents, err := s.repo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.IncidentResponse, len(incidents))
	for i := range incidents {
		resp[i] = incidentToResponse(&incidents[i])
	}
	return resp, nil
}

func (s *incidentService) Update(ctx context.Context, id uuid.UUID, actor Actor, req dto.IncidentRequest) (*dto.IncidentResponse, error) {
	incident, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	incident.Title = req.Title
	incident.Description = req.Description
	incident.Severity = req.Severity
	incident.PhotoIDs = req.PhotoIDs
	incident.LastModifiedBy = &actor.ID

	if err := s.repo.Update(ctx, incident); err != nil {
		return nil, err
	}
	resp := incidentToResponse(incident)
	return &resp, nil
}

func (s *incidentService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	incident, err := s.loadMutable(ctx, id, actor)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, incident.ID)
}

func (s *incidentService) guardOpen(ctx context.Context, period reconcile.ReportingPeriod) error {
	finalized, err := s.shiftRepo.IsFinalized(ctx, period)
	if err != nil {
		return err
	}
	if finalized {
		return ErrDayFinalized
	}
	return nil
}

func (s *incidentService) loadMutable(ctx context.Context, id uuid.UUID, actor Actor) (*model.IncidentReport, error) {
	incident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	period, err := reconcile.ParsePeriod(incident.BusinessDate)
	if err != nil {
		return nil, err
	}
	if err := s.guardOpen(ctx, period); err != nil {
		return nil, err
	}
	if incident.CreatedBy != actor.ID {
		return nil, ErrNotCreator
	}
	return incident, nil
}

func incidentToResponse(i *model.IncidentReport) dto.IncidentResponse {
	return dto.IncidentResponse{
		ID:            i.ID.String(),
		BusinessDate:  i.BusinessDate,
		Title:         i.Title,
		Description:   i.Description,
		Severity:      i.Severity,
		PhotoIDs:      i.PhotoIDs,
		CreatedBy:     i.CreatedBy.String(),
		CreatedByName: i.CreatedByName,
		CreatedAt:     i.CreatedAt.Format(time.RFC3339),
	}
}
