package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/helpers"
	"github.com/qfddxs/Hospital/internal/pkg/validation"
)

// ScheduleBlockService defines the interface for schedule block operations
type ScheduleBlockService interface {
	ListScheduleBlocks(ctx context.Context, filter models.ScheduleBlockFilter) ([]dto.ScheduleBlockResponse, error)
	GetScheduleBlockByID(ctx context.Context, id int64) (*dto.ScheduleBlockResponse, error)
	CreateScheduleBlock(ctx context.Context, req *dto.CreateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error)
	ReplaceScheduleBlock(ctx context.Context, id int64, req *dto.UpdateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error)
	UpdateScheduleBlock(ctx context.Context, id int64, req *dto.UpdateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error)
	DeleteScheduleBlock(ctx context.Context, id int64) error
}

type scheduleBlockServiceImpl struct {
	blockRepo   ScheduleBlockRepository
	studentRepo StudentRepository
	centerRepo  TrainingCenterRepository
	tx          db.Transactor
}

// NewScheduleBlockService creates a new schedule block service instance
func NewScheduleBlockService(blockRepo ScheduleBlockRepository, studentRepo StudentRepository, centerRepo TrainingCenterRepository, tx db.Transactor) ScheduleBlockService {
	return &scheduleBlockServiceImpl{
		blockRepo:   blockRepo,
		studentRepo: studentRepo,
		centerRepo:  centerRepo,
		tx:          tx,
	}
}

// scheduleBlockInput holds the raw values of a block before time parsing
type scheduleBlockInput struct {
	studentID        int64
	trainingCenterID int64
	weekday          string
	startTime        string
	endTime          string
	activity         string
}

func (s *scheduleBlockServiceImpl) build(ctx context.Context, in scheduleBlockInput) (*models.ScheduleBlock, error) {
	verr := &apperrors.ValidationError{}
	block := &models.ScheduleBlock{
		StudentID:        in.studentID,
		TrainingCenterID: in.trainingCenterID,
		Weekday:          strings.TrimSpace(in.weekday),
		Activity:         strings.TrimSpace(in.activity),
	}

	if msg := validation.NewStringValidation(block.Weekday).WithMaxLength(validation.WeekdayMaxLength).Check(); msg != "" {
		verr.Add("weekday", msg)
	}
	if msg := validation.NewStringValidation(block.Activity).WithMaxLength(validation.ActivityMaxLength).Check(); msg != "" {
		verr.Add("activity", msg)
	}

	var err error
	if block.StartTime, err = helpers.ParseClockTime(in.startTime); err != nil {
		verr.Add("startTime", validation.MsgClockTime)
	}
	if block.EndTime, err = helpers.ParseClockTime(in.endTime); err != nil {
		verr.Add("endTime", validation.MsgClockTime)
	}

	if err := checkReference(ctx, verr, "studentId", block.StudentID, s.studentRepo.StudentExists); err != nil {
		return nil, err
	}
	if err := checkReference(ctx, verr, "trainingCenterId", block.TrainingCenterID, s.centerRepo.TrainingCenterExists); err != nil {
		return nil, err
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return block, nil
}

// ListScheduleBlocks retrieves schedule blocks in storage order
func (s *scheduleBlockServiceImpl) ListScheduleBlocks(ctx context.Context, filter models.ScheduleBlockFilter) ([]dto.ScheduleBlockResponse, error) {
	blocks, err := s.blockRepo.ListScheduleBlocks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedule blocks: %w", err)
	}
	return dto.NewScheduleBlockListResponse(blocks), nil
}

// GetScheduleBlockByID retrieves a schedule block by ID
func (s *scheduleBlockServiceImpl) GetScheduleBlockByID(ctx context.Context, id int64) (*dto.ScheduleBlockResponse, error) {
	if err := checkID(id, apperrors.ErrScheduleBlockNotFound); err != nil {
		return nil, err
	}

	block, err := s.blockRepo.GetScheduleBlockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewScheduleBlockResponse(block)
	return &resp, nil
}

// CreateScheduleBlock creates a schedule block. Overlapping blocks are allowed.
func (s *scheduleBlockServiceImpl) CreateScheduleBlock(ctx context.Context, req *dto.CreateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}

	in := scheduleBlockInput{
		weekday:   req.Weekday,
		startTime: req.StartTime,
		endTime:   req.EndTime,
		activity:  req.Activity,
	}
	if req.StudentID != nil {
		in.studentID = *req.StudentID
	}
	if req.TrainingCenterID != nil {
		in.trainingCenterID = *req.TrainingCenterID
	}

	var created *models.ScheduleBlock
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		block, err := s.build(ctx, in)
		if err != nil {
			return err
		}
		if err := s.blockRepo.CreateScheduleBlock(ctx, block); err != nil {
			return err
		}
		created = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewScheduleBlockResponse(created)
	return &resp, nil
}

// ReplaceScheduleBlock applies a full update; every field is required
func (s *scheduleBlockServiceImpl) ReplaceScheduleBlock(ctx context.Context, id int64, req *dto.UpdateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error) {
	return s.update(ctx, id, req, true)
}

// UpdateScheduleBlock applies a partial update
func (s *scheduleBlockServiceImpl) UpdateScheduleBlock(ctx context.Context, id int64, req *dto.UpdateScheduleBlockRequest) (*dto.ScheduleBlockResponse, error) {
	return s.update(ctx, id, req, false)
}

func (s *scheduleBlockServiceImpl) update(ctx context.Context, id int64, req *dto.UpdateScheduleBlockRequest, full bool) (*dto.ScheduleBlockResponse, error) {
	if err := checkID(id, apperrors.ErrScheduleBlockNotFound); err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.UpdateScheduleBlockRequest{}
	}

	var updated *models.ScheduleBlock
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		current, err := s.blockRepo.GetScheduleBlockByID(ctx, id)
		if err != nil {
			return err
		}

		if full {
			verr := &apperrors.ValidationError{}
			required := map[string]bool{
				"studentId":        req.StudentID != nil,
				"trainingCenterId": req.TrainingCenterID != nil,
				"weekday":          req.Weekday != nil,
				"startTime":        req.StartTime != nil,
				"endTime":          req.EndTime != nil,
				"activity":         req.Activity != nil,
			}
			for field, present := range required {
				if !present {
					verr.Add(field, validation.MsgRequired)
				}
			}
			if verr.HasErrors() {
				return verr
			}
		}

		in := scheduleBlockInput{
			studentID:        current.StudentID,
			trainingCenterID: current.TrainingCenterID,
			weekday:          current.Weekday,
			startTime:        helpers.FormatClockTime(current.StartTime),
			endTime:          helpers.FormatClockTime(current.EndTime),
			activity:         current.Activity,
		}
		if req.StudentID != nil {
			in.studentID = *req.StudentID
		}
		if req.TrainingCenterID != nil {
			in.trainingCenterID = *req.TrainingCenterID
		}
		if req.Weekday != nil {
			in.weekday = *req.Weekday
		}
		if req.StartTime != nil {
			in.startTime = *req.StartTime
		}
		if req.EndTime != nil {
			in.endTime = *req.EndTime
		}
		if req.Activity != nil {
			in.activity = *req.Activity
		}

		block, err := s.build(ctx, in)
		if err != nil {
			return err
		}
		block.ID = id

		if err := s.blockRepo.UpdateScheduleBlock(ctx, block); err != nil {
			return err
		}
		updated = block
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewScheduleBlockResponse(updated)
	return &resp, nil
}

// DeleteScheduleBlock deletes a schedule block
func (s *scheduleBlockServiceImpl) DeleteScheduleBlock(ctx context.Context, id int64) error {
	if err := checkID(id, apperrors.ErrScheduleBlockNotFound); err != nil {
		return err
	}
	return s.blockRepo.DeleteScheduleBlock(ctx, id)
}
