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

// QuotaRequestService defines the interface for quota request operations
type QuotaRequestService interface {
	ListQuotaRequests(ctx context.Context, filter models.QuotaRequestFilter) ([]dto.QuotaRequestResponse, error)
	GetQuotaRequestByID(ctx context.Context, id int64) (*dto.QuotaRequestResponse, error)
	CreateQuotaRequest(ctx context.Context, req *dto.CreateQuotaRequestRequest) (*dto.QuotaRequestResponse, error)
	ReplaceQuotaRequest(ctx context.Context, id int64, req *dto.UpdateQuotaRequestRequest) (*dto.QuotaRequestResponse, error)
	UpdateQuotaRequest(ctx context.Context, id int64, req *dto.UpdateQuotaRequestRequest) (*dto.QuotaRequestResponse, error)
	DeleteQuotaRequest(ctx context.Context, id int64) error
}

type quotaRequestServiceImpl struct {
	quotaRepo  QuotaRequestRepository
	centerRepo TrainingCenterRepository
	tx         db.Transactor
}

// NewQuotaRequestService creates a new quota request service instance
func NewQuotaRequestService(quotaRepo QuotaRequestRepository, centerRepo TrainingCenterRepository, tx db.Transactor) QuotaRequestService {
	return &quotaRequestServiceImpl{
		quotaRepo:  quotaRepo,
		centerRepo: centerRepo,
		tx:         tx,
	}
}

func (s *quotaRequestServiceImpl) validateQuotaRequest(ctx context.Context, q *models.QuotaRequest) error {
	verr := &apperrors.ValidationError{}

	if msg := validation.NewStringValidation(q.Specialty).WithMaxLength(validation.SpecialtyMaxLength).Check(); msg != "" {
		verr.Add("specialty", msg)
	}
	if msg := validation.NewNumericValidation(q.RequestedQuota).WithMin(1).WithMax(validation.MaxInteger).Check(); msg != "" {
		verr.Add("requestedQuota", msg)
	}
	if !q.Status.Valid() {
		verr.Add("status", validation.ChoiceMessage(string(q.Status)))
	}
	if msg := validation.NewStringValidation(q.Requester).WithMaxLength(validation.RequesterMaxLength).Check(); msg != "" {
		verr.Add("requester", msg)
	}
	if err := checkReference(ctx, verr, "trainingCenterId", q.TrainingCenterID, s.centerRepo.TrainingCenterExists); err != nil {
		return err
	}

	return verr.OrNil()
}

// ListQuotaRequests retrieves quota requests, newest first
func (s *quotaRequestServiceImpl) ListQuotaRequests(ctx context.Context, filter models.QuotaRequestFilter) ([]dto.QuotaRequestResponse, error) {
	requests, err := s.quotaRepo.ListQuotaRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving quota requests: %w", err)
	}
	return dto.NewQuotaRequestListResponse(requests), nil
}

// GetQuotaRequestByID retrieves a quota request by ID
func (s *quotaRequestServiceImpl) GetQuotaRequestByID(ctx context.Context, id int64) (*dto.QuotaRequestResponse, error) {
	if err := checkID(id, apperrors.ErrQuotaRequestNotFound); err != nil {
		return nil, err
	}

	q, err := s.quotaRepo.GetQuotaRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewQuotaRequestResponse(q)
	return &resp, nil
}

// CreateQuotaRequest records a new request. Its date is assigned by the
// database and its status never changes capacity.
func (s *quotaRequestServiceImpl) CreateQuotaRequest(ctx context.Context, req *dto.CreateQuotaRequestRequest) (*dto.QuotaRequestResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}

	q := &models.QuotaRequest{
		Specialty: strings.TrimSpace(req.Specialty),
		Status:    models.QuotaRequestPending,
		Requester: strings.TrimSpace(req.Requester),
		Comment:   req.Comment,
	}
	if req.TrainingCenterID != nil {
		q.TrainingCenterID = *req.TrainingCenterID
	}
	if req.RequestedQuota != nil {
		q.RequestedQuota = *req.RequestedQuota
	}
	if req.Status != nil {
		q.Status = *req.Status
	}

	var created *models.QuotaRequest
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.validateQuotaRequest(ctx, q); err != nil {
			return err
		}
		if err := s.quotaRepo.CreateQuotaRequest(ctx, q); err != nil {
			return err
		}
		var err error
		created, err = s.quotaRepo.GetQuotaRequestByID(ctx, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewQuotaRequestResponse(created)
	return &resp, nil
}

// ReplaceQuotaRequest applies a full update
func (s *quotaRequestServiceImpl) ReplaceQuotaRequest(ctx context.Context, id int64, req *dto.UpdateQuotaRequestRequest) (*dto.QuotaRequestResponse, error) {
	return s.update(ctx, id, req, true)
}

// UpdateQuotaRequest applies a partial update
func (s *quotaRequestServiceImpl) UpdateQuotaRequest(ctx context.Context, id int64, req *dto.UpdateQuotaRequestRequest) (*dto.QuotaRequestResponse, error) {
	return s.update(ctx, id, req, false)
}

func (s *quotaRequestServiceImpl) update(ctx context.Context, id int64, req *dto.UpdateQuotaRequestRequest, full bool) (*dto.QuotaRequestResponse, error) {
	if err := checkID(id, apperrors.ErrQuotaRequestNotFound); err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.UpdateQuotaRequestRequest{}
	}

	var updated *models.QuotaRequest
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		q, err := s.quotaRepo.GetQuotaRequestByID(ctx, id)
		if err != nil {
			return err
		}

		if full {
			verr := &apperrors.ValidationError{}
			if req.TrainingCenterID == nil {
				verr.Add("trainingCenterId", validation.MsgRequired)
			}
			if req.Specialty == nil {
				verr.Add("specialty", validation.MsgRequired)
			}
			if req.RequestedQuota == nil {
				verr.Add("requestedQuota", validation.MsgRequired)
			}
			if req.Requester == nil {
				verr.Add("requester", validation.MsgRequired)
			}
			if verr.HasErrors() {
				return verr
			}
		}

		if req.TrainingCenterID != nil {
			q.TrainingCenterID = *req.TrainingCenterID
		}
		if req.Specialty != nil {
			q.Specialty = strings.TrimSpace(*req.Specialty)
		}
		if req.RequestedQuota != nil {
			q.RequestedQuota = *req.RequestedQuota
		}
		if req.Status != nil {
			q.Status = *req.Status
		}
		if req.Requester != nil {
			q.Requester = strings.TrimSpace(*req.Requester)
		}
		if req.Comment.Set {
			q.Comment = req.Comment.Ptr()
		}

		if err := s.validateQuotaRequest(ctx, q); err != nil {
			return err
		}
		if err := s.quotaRepo.UpdateQuotaRequest(ctx, q); err != nil {
			return err
		}
		updated, err = s.quotaRepo.GetQuotaRequestByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewQuotaRequestResponse(updated)
	return &resp, nil
}

// DeleteQuotaRequest deletes a quota request
func (s *quotaRequestServiceImpl) DeleteQuotaRequest(ctx context.Context, id int64) error {
	if err := checkID(id, apperrors.ErrQuotaRequestNotFound); err != nil {
		return err
	}
	return s.quotaRepo.DeleteQuotaRequest(ctx, id)
}
