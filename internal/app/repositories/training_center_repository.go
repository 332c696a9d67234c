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

var trainingCenterConstraints = map[string]string{
	"training_centers_name_key":                 "name",
	"training_centers_total_capacity_check":     "totalCapacity",
	"training_centers_available_capacity_check": "availableCapacity",
}

var trainingCenterColumns = []string{
	"id", "name", "location", "specialties", "total_capacity", "available_capacity",
}

// TrainingCenterRepository handles training center database operations
type TrainingCenterRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTrainingCenterRepository creates a new TrainingCenterRepository
func NewTrainingCenterRepository(conn db.DBTX) *TrainingCenterRepository {
	return &TrainingCenterRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTrainingCenter inserts a center and sets its ID
func (r *TrainingCenterRepository) CreateTrainingCenter(ctx context.Context, center *models.TrainingCenter) error {
	sql, args, err := r.sb.Insert("training_centers").
		Columns("name", "location", "specialties", "total_capacity", "available_capacity").
		Values(center.Name, center.Location, center.Specialties, center.TotalCapacity, center.AvailableCapacity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create training center SQL")
		return fmt.Errorf("failed to build create training center query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&center.ID); err != nil {
		if verr, ok := dberrors.ToValidationError(err, trainingCenterConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Str("name", center.Name).Msg("Error executing create training center query")
		return fmt.Errorf("error creating training center: %w", err)
	}

	return nil
}

// GetTrainingCenterByID retrieves a training center by ID
func (r *TrainingCenterRepository) GetTrainingCenterByID(ctx context.Context, id int64) (*models.TrainingCenter, error) {
	sql, args, err := r.sb.Select(trainingCenterColumns...).
		From("training_centers").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get training center by ID SQL")
		return nil, fmt.Errorf("failed to build get training center query: %w", err)
	}

	center, err := scanTrainingCenter(db.Conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainingCenterNotFound
		}
		logger.Error().Err(err).Int64("trainingCenterID", id).Msg("Error scanning training center row")
		return nil, fmt.Errorf("error getting training center by ID: %w", err)
	}

	return center, nil
}

// ListTrainingCenters returns the centers matching filter ordered by name
func (r *TrainingCenterRepository) ListTrainingCenters(ctx context.Context, filter models.TrainingCenterFilter) ([]*models.TrainingCenter, error) {
	query := r.sb.Select(trainingCenterColumns...).
		From("training_centers").
		OrderBy("name ASC", "id ASC")

	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
		})
	}
	if filter.Status != nil {
		switch *filter.Status {
		case models.CenterStatusActive:
			query = query.Where("total_capacity > 0 AND available_capacity > 0")
		case models.CenterStatusComplete:
			query = query.Where("(total_capacity = 0 OR available_capacity <= 0)")
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list training centers SQL")
		return nil, fmt.Errorf("failed to build list training centers query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list training centers query")
		return nil, fmt.Errorf("error querying training centers: %w", err)
	}
	defer rows.Close()

	centers := []*models.TrainingCenter{}
	for rows.Next() {
		center, err := scanTrainingCenter(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning training center row during list")
			return nil, fmt.Errorf("error scanning training center row: %w", err)
		}
		centers = append(centers, center)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating training center rows")
		return nil, fmt.Errorf("error iterating training center rows: %w", err)
	}

	return centers, nil
}

// UpdateTrainingCenter writes every stored field of center
func (r *TrainingCenterRepository) UpdateTrainingCenter(ctx context.Context, center *models.TrainingCenter) error {
	sql, args, err := r.sb.Update("training_centers").
		SetMap(map[string]interface{}{
			"name":               center.Name,
			"location":           center.Location,
			"specialties":        center.Specialties,
			"total_capacity":     center.TotalCapacity,
			"available_capacity": center.AvailableCapacity,
		}).
		Where(squirrel.Eq{"id": center.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update training center SQL")
		return fmt.Errorf("failed to build update training center query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if verr, ok := dberrors.ToValidationError(err, trainingCenterConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("trainingCenterID", center.ID).Msg("Error executing update training center query")
		return fmt.Errorf("error updating training center: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrainingCenterNotFound
	}

	return nil
}

// DeleteTrainingCenter deletes a center. The schema nulls student
// references and cascades to quota requests and schedule blocks.
func (r *TrainingCenterRepository) DeleteTrainingCenter(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("training_centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete training center SQL")
		return fmt.Errorf("failed to build delete training center query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("trainingCenterID", id).Msg("Error executing delete training center query")
		return fmt.Errorf("error deleting training center: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrainingCenterNotFound
	}

	return nil
}

// TrainingCenterExists reports whether a center with id exists
func (r *TrainingCenterRepository) TrainingCenterExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("training_centers").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building training center exists SQL")
		return false, fmt.Errorf("failed to build training center existence query: %w", err)
	}

	var exists bool
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("trainingCenterID", id).Msg("Error checking training center existence")
		return false, fmt.Errorf("error checking training center existence: %w", err)
	}

	return exists, nil
}

func scanTrainingCenter(row pgx.Row) (*models.TrainingCenter, error) {
	center := &models.TrainingCenter{}
	err := row.Scan(
		&center.ID,
		&center.Name,
		&center.Location,
		&center.Specialties,
		&center.TotalCapacity,
		&center.AvailableCapacity,
	)
	if err != nil {
		return nil, err
	}
	if center.Specialties == nil {
		center.Specialties = []string{}
	}
	return center, nil
}
