package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/validation"
)

// TrainingCenterService defines the interface for training center operations
type TrainingCenterService interface {
	ListTrainingCenters(ctx context.Context, filter models.TrainingCenterFilter) ([]dto.TrainingCenterResponse, error)
	GetTrainingCenterByID(ctx context.Context, id int64) (*dto.TrainingCenterResponse, error)
	CreateTrainingCenter(ctx context.Context, req *dto.CreateTrainingCenterRequest) (*dto.TrainingCenterResponse, error)
	ReplaceTrainingCenter(ctx context.Context, id int64, req *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error)
	UpdateTrainingCenter(ctx context.Context, id int64, req *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error)
	DeleteTrainingCenter(ctx context.Context, id int64) error
}

// trainingCenterServiceImpl implements the TrainingCenterService interface
type trainingCenterServiceImpl struct {
	centerRepo TrainingCenterRepository
	tx         db.Transactor
}

// NewTrainingCenterService creates a new training center service instance
func NewTrainingCenterService(centerRepo TrainingCenterRepository, tx db.Transactor) TrainingCenterService {
	return &trainingCenterServiceImpl{
		centerRepo: centerRepo,
		tx:         tx,
	}
}

// validateTrainingCenter validates center data before database operations
func (s *trainingCenterServiceImpl) validateTrainingCenter(center *models.TrainingCenter) error {
	verr := &apperrors.ValidationError{}

	if msg := validation.NewStringValidation(center.Name).WithMaxLength(validation.CenterNameMaxLength).Check(); msg != "" {
		verr.Add("name", msg)
	}
	if msg := validation.NewStringValidation(center.Location).WithMaxLength(validation.CenterLocationMaxLength).WithAllowBlank(true).Check(); msg != "" {
		verr.Add("location", msg)
	}
	if msg := validation.NewNumericValidation(center.TotalCapacity).WithMin(0).WithMax(validation.MaxInteger).Check(); msg != "" {
		verr.Add("totalCapacity", msg)
	}

	return verr.OrNil()
}

func normalizeSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	for _, sp := range in {
		if sp = strings.TrimSpace(sp); sp != "" {
			out = append(out, sp)
		}
	}
	return out
}

// ListTrainingCenters retrieves all centers matching filter ordered by name
func (s *trainingCenterServiceImpl) ListTrainingCenters(ctx context.Context, filter models.TrainingCenterFilter) ([]dto.TrainingCenterResponse, error) {
	centers, err := s.centerRepo.ListTrainingCenters(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving training centers: %w", err)
	}
	return dto.NewTrainingCenterListResponse(centers), nil
}

// GetTrainingCenterByID retrieves a training center by ID
func (s *trainingCenterServiceImpl) GetTrainingCenterByID(ctx context.Context, id int64) (*dto.TrainingCenterResponse, error) {
	if err := checkID(id, apperrors.ErrTrainingCenterNotFound); err != nil {
		return nil, err
	}

	center, err := s.centerRepo.GetTrainingCenterByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewTrainingCenterResponse(center)
	return &resp, nil
}

// CreateTrainingCenter creates a center whose available capacity starts at
// its total capacity.
func (s *trainingCenterServiceImpl) CreateTrainingCenter(ctx context.Context, req *dto.CreateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}

	center := &models.TrainingCenter{
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Specialties: normalizeSpecialties(req.Specialties),
	}
	if req.TotalCapacity != nil {
		center.TotalCapacity = *req.TotalCapacity
	}

	if err := s.validateTrainingCenter(center); err != nil {
		return nil, err
	}
	center.AvailableCapacity = models.InitialAvailableCapacity(center.TotalCapacity)

	if err := s.centerRepo.CreateTrainingCenter(ctx, center); err != nil {
		return nil, err
	}

	resp := dto.NewTrainingCenterResponse(center)
	return &resp, nil
}

// ReplaceTrainingCenter applies a full update; name is required
func (s *trainingCenterServiceImpl) ReplaceTrainingCenter(ctx context.Context, id int64, req *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	return s.update(ctx, id, req, true)
}

// UpdateTrainingCenter applies a partial update
func (s *trainingCenterServiceImpl) UpdateTrainingCenter(ctx context.Context, id int64, req *dto.UpdateTrainingCenterRequest) (*dto.TrainingCenterResponse, error) {
	return s.update(ctx, id, req, false)
}

func (s *trainingCenterServiceImpl) update(ctx context.Context, id int64, req *dto.UpdateTrainingCenterRequest, full bool) (*dto.TrainingCenterResponse, error) {
	if err := checkID(id, apperrors.ErrTrainingCenterNotFound); err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.UpdateTrainingCenterRequest{}
	}

	var updated *models.TrainingCenter
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		center, err := s.centerRepo.GetTrainingCenterByID(ctx, id)
		if err != nil {
			return err
		}

		if full && req.Name == nil {
			return apperrors.NewValidationError("name", validation.MsgRequired)
		}

		oldTotal, oldAvailable := center.TotalCapacity, center.AvailableCapacity
		if req.Name != nil {
			center.Name = strings.TrimSpace(*req.Name)
		}
		if req.Location != nil {
			center.Location = strings.TrimSpace(*req.Location)
		}
		if req.Specialties != nil {
			center.Specialties = normalizeSpecialties(*req.Specialties)
		}
		if req.TotalCapacity != nil {
			center.TotalCapacity = *req.TotalCapacity
		}

		if err := s.validateTrainingCenter(center); err != nil {
			return err
		}

		// Available capacity is never taken from the client.
		center.AvailableCapacity = models.ResolveAvailableCapacity(oldTotal, oldAvailable, req.TotalCapacity, nil)

		if err := s.centerRepo.UpdateTrainingCenter(ctx, center); err != nil {
			return err
		}
		updated = center
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewTrainingCenterResponse(updated)
	return &resp, nil
}

// DeleteTrainingCenter deletes a center. Students keep existing without a
// center; its quota requests and schedule blocks are removed.
func (s *trainingCenterServiceImpl) DeleteTrainingCenter(ctx context.Context, id int64) error {
	if err := checkID(id, apperrors.ErrTrainingCenterNotFound); err != nil {
		return err
	}
	return s.centerRepo.DeleteTrainingCenter(ctx, id)
}
