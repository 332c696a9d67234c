package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
	"github.com/qfddxs/Hospital/internal/pkg/dberrors"
	"github.com/qfddxs/Hospital/internal/pkg/helpers"
	"github.com/qfddxs/Hospital/internal/pkg/logger"
)

var quotaRequestConstraints = map[string]string{
	"quota_requests_training_center_id_fkey": "trainingCenterId",
	"quota_requests_requested_quota_check":   "requestedQuota",
	"quota_requests_status_check":            "status",
}

var quotaRequestColumns = []string{
	"q.id", "q.training_center_id", "q.specialty", "q.requested_quota", "q.request_date",
	"q.status", "q.requester", "q.comment", "tc.name",
}

// QuotaRequestRepository handles quota request database operations
type QuotaRequestRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewQuotaRequestRepository creates a new QuotaRequestRepository
func NewQuotaRequestRepository(conn db.DBTX) *QuotaRequestRepository {
	return &QuotaRequestRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *QuotaRequestRepository) selectQuotaRequests() squirrel.SelectBuilder {
	return r.sb.Select(quotaRequestColumns...).
		From("quota_requests q").
		Join("training_centers tc ON tc.id = q.training_center_id")
}

// CreateQuotaRequest inserts a request and sets its ID and request date
func (r *QuotaRequestRepository) CreateQuotaRequest(ctx context.Context, req *models.QuotaRequest) error {
	sql, args, err := r.sb.Insert("quota_requests").
		Columns("training_center_id", "specialty", "requested_quota", "status", "requester", "comment").
		Values(req.TrainingCenterID, req.Specialty, req.RequestedQuota, string(req.Status), req.Requester, req.Comment).
		Suffix("RETURNING id, request_date").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create quota request SQL")
		return fmt.Errorf("failed to build create quota request query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&req.ID, &req.RequestDate); err != nil {
		if verr, ok := dberrors.ToValidationError(err, quotaRequestConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("trainingCenterID", req.TrainingCenterID).Msg("Error executing create quota request query")
		return fmt.Errorf("error creating quota request: %w", err)
	}

	return nil
}

// GetQuotaRequestByID retrieves a quota request by ID
func (r *QuotaRequestRepository) GetQuotaRequestByID(ctx context.Context, id int64) (*models.QuotaRequest, error) {
	sql, args, err := r.selectQuotaRequests().
		Where(squirrel.Eq{"q.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get quota request by ID SQL")
		return nil, fmt.Errorf("failed to build get quota request query: %w", err)
	}

	req, err := scanQuotaRequest(db.Conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuotaRequestNotFound
		}
		logger.Error().Err(err).Int64("quotaRequestID", id).Msg("Error scanning quota request row")
		return nil, fmt.Errorf("error getting quota request by ID: %w", err)
	}

	return req, nil
}

// ListQuotaRequests returns the requests matching filter, newest first
func (r *QuotaRequestRepository) ListQuotaRequests(ctx context.Context, filter models.QuotaRequestFilter) ([]*models.QuotaRequest, error) {
	query := r.selectQuotaRequests().OrderBy("q.request_date DESC", "q.id DESC")

	if filter.TrainingCenterID != nil {
		query = query.Where(squirrel.Eq{"q.training_center_id": *filter.TrainingCenterID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"q.status": string(*filter.Status)})
	}
	if filter.Specialty != "" {
		query = query.Where(squirrel.ILike{"q.specialty": helpers.EscapeLike(filter.Specialty)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list quota requests SQL")
		return nil, fmt.Errorf("failed to build list quota requests query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list quota requests query")
		return nil, fmt.Errorf("error querying quota requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.QuotaRequest{}
	for rows.Next() {
		req, err := scanQuotaRequest(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning quota request row during list")
			return nil, fmt.Errorf("error scanning quota request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating quota request rows")
		return nil, fmt.Errorf("error iterating quota request rows: %w", err)
	}

	return requests, nil
}

// UpdateQuotaRequest writes every writable field; request_date is never touched
func (r *QuotaRequestRepository) UpdateQuotaRequest(ctx context.Context, req *models.QuotaRequest) error {
	sql, args, err := r.sb.Update("quota_requests").
		SetMap(map[string]interface{}{
			"training_center_id": req.TrainingCenterID,
			"specialty":          req.Specialty,
			"requested_quota":    req.RequestedQuota,
			"status":             string(req.Status),
			"requester":          req.Requester,
			"comment":            req.Comment,
		}).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update quota request SQL")
		return fmt.Errorf("failed to build update quota request query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if verr, ok := dberrors.ToValidationError(err, quotaRequestConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("quotaRequestID", req.ID).Msg("Error executing update quota request query")
		return fmt.Errorf("error updating quota request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuotaRequestNotFound
	}

	return nil
}

// DeleteQuotaRequest deletes a quota request by ID
func (r *QuotaRequestRepository) DeleteQuotaRequest(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("quota_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete quota request SQL")
		return fmt.Errorf("failed to build delete quota request query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quotaRequestID", id).Msg("Error executing delete quota request query")
		return fmt.Errorf("error deleting quota request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuotaRequestNotFound
	}

	return nil
}

func scanQuotaRequest(row pgx.Row) (*models.QuotaRequest, error) {
	req := &models.QuotaRequest{}
	var status string
	err := row.Scan(
		&req.ID,
		&req.TrainingCenterID,
		&req.Specialty,
		&req.RequestedQuota,
		&req.RequestDate,
		&status,
		&req.Requester,
		&req.Comment,
		&req.TrainingCenterName,
	)
	if err != nil {
		return nil, err
	}
	req.Status = models.QuotaRequestStatus(status)
	return req, nil
}
