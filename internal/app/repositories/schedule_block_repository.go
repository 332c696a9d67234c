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

var scheduleBlockConstraints = map[string]string{
	"schedule_blocks_student_id_fkey":         "studentId",
	"schedule_blocks_training_center_id_fkey": "trainingCenterId",
}

var scheduleBlockColumns = []string{
	"id", "student_id", "training_center_id", "weekday", "start_time", "end_time", "activity",
}

// ScheduleBlockRepository handles schedule block database operations
type ScheduleBlockRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewScheduleBlockRepository creates a new ScheduleBlockRepository
func NewScheduleBlockRepository(conn db.DBTX) *ScheduleBlockRepository {
	return &ScheduleBlockRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateScheduleBlock inserts a block and sets its ID
func (r *ScheduleBlockRepository) CreateScheduleBlock(ctx context.Context, block *models.ScheduleBlock) error {
	sql, args, err := r.sb.Insert("schedule_blocks").
		Columns("student_id", "training_center_id", "weekday", "start_time", "end_time", "activity").
		Values(block.StudentID, block.TrainingCenterID, block.Weekday, block.StartTime, block.EndTime, block.Activity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create schedule block SQL")
		return fmt.Errorf("failed to build create schedule block query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&block.ID); err != nil {
		if verr, ok := dberrors.ToValidationError(err, scheduleBlockConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("studentID", block.StudentID).Msg("Error executing create schedule block query")
		return fmt.Errorf("error creating schedule block: %w", err)
	}

	return nil
}

// GetScheduleBlockByID retrieves a schedule block by ID
func (r *ScheduleBlockRepository) GetScheduleBlockByID(ctx context.Context, id int64) (*models.ScheduleBlock, error) {
	sql, args, err := r.sb.Select(scheduleBlockColumns...).
		From("schedule_blocks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get schedule block by ID SQL")
		return nil, fmt.Errorf("failed to build get schedule block query: %w", err)
	}

	block, err := scanScheduleBlock(db.Conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleBlockNotFound
		}
		logger.Error().Err(err).Int64("scheduleBlockID", id).Msg("Error scanning schedule block row")
		return nil, fmt.Errorf("error getting schedule block by ID: %w", err)
	}

	return block, nil
}

// ListScheduleBlocks returns the blocks matching filter in storage order
func (r *ScheduleBlockRepository) ListScheduleBlocks(ctx context.Context, filter models.ScheduleBlockFilter) ([]*models.ScheduleBlock, error) {
	query := r.sb.Select(scheduleBlockColumns...).
		From("schedule_blocks").
		OrderBy("id ASC")

	if filter.StudentID != nil {
		query = query.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.TrainingCenterID != nil {
		query = query.Where(squirrel.Eq{"training_center_id": *filter.TrainingCenterID})
	}
	if filter.Weekday != "" {
		query = query.Where(squirrel.ILike{"weekday": helpers.EscapeLike(filter.Weekday)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list schedule blocks SQL")
		return nil, fmt.Errorf("failed to build list schedule blocks query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list schedule blocks query")
		return nil, fmt.Errorf("error querying schedule blocks: %w", err)
	}
	defer rows.Close()

	blocks := []*models.ScheduleBlock{}
	for rows.Next() {
		block, err := scanScheduleBlock(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning schedule block row during list")
			return nil, fmt.Errorf("error scanning schedule block row: %w", err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating schedule block rows")
		return nil, fmt.Errorf("error iterating schedule block rows: %w", err)
	}

	return blocks, nil
}

// UpdateScheduleBlock writes every stored field of block
func (r *ScheduleBlockRepository) UpdateScheduleBlock(ctx context.Context, block *models.ScheduleBlock) error {
	sql, args, err := r.sb.Update("schedule_blocks").
		SetMap(map[string]interface{}{
			"student_id":         block.StudentID,
			"training_center_id": block.TrainingCenterID,
			"weekday":            block.Weekday,
			"start_time":         block.StartTime,
			"end_time":           block.EndTime,
			"activity":           block.Activity,
		}).
		Where(squirrel.Eq{"id": block.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update schedule block SQL")
		return fmt.Errorf("failed to build update schedule block query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if verr, ok := dberrors.ToValidationError(err, scheduleBlockConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("scheduleBlockID", block.ID).Msg("Error executing update schedule block query")
		return fmt.Errorf("error updating schedule block: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleBlockNotFound
	}

	return nil
}

// DeleteScheduleBlock deletes a schedule block by ID
func (r *ScheduleBlockRepository) DeleteScheduleBlock(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("schedule_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete schedule block SQL")
		return fmt.Errorf("failed to build delete schedule block query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scheduleBlockID", id).Msg("Error executing delete schedule block query")
		return fmt.Errorf("error deleting schedule block: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScheduleBlockNotFound
	}

	return nil
}

func scanScheduleBlock(row pgx.Row) (*models.ScheduleBlock, error) {
	block := &models.ScheduleBlock{}
	err := row.Scan(
		&block.ID,
		&block.StudentID,
		&block.TrainingCenterID,
		&block.Weekday,
		&block.StartTime,
		&block.EndTime,
		&block.Activity,
	)
	if err != nil {
		return nil, err
	}
	return block, nil
}
