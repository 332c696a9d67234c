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

var studentConstraints = map[string]string{
	"students_national_id_key":         "nationalId",
	"students_email_key":               "email",
	"students_training_center_id_fkey": "trainingCenterId",
	"students_status_check":            "status",
}

// Students are always read together with the name of their center.
var studentColumns = []string{
	"s.id", "s.name", "s.national_id", "s.email", "s.program", "s.current_rotation",
	"s.training_center_id", "s.attendance", "s.status", "s.enrollment_date", "tc.name",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		LeftJoin("training_centers tc ON tc.id = s.training_center_id")
}

// CreateStudent inserts a student and sets its ID
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "national_id", "email", "program", "current_rotation",
			"training_center_id", "attendance", "status", "enrollment_date").
		Values(student.Name, student.NationalID, student.Email, student.Program, student.CurrentRotation,
			student.TrainingCenterID, student.Attendance, string(student.Status), student.EnrollmentDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		if verr, ok := dberrors.ToValidationError(err, studentConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Str("name", student.Name).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(db.Conn(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// ListStudents returns the students matching filter ordered by name
func (r *StudentRepository) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	query := r.selectStudents().OrderBy("s.name ASC", "s.id ASC")

	if filter.TrainingCenterID != nil {
		query = query.Where(squirrel.Eq{"s.training_center_id": *filter.TrainingCenterID})
	}
	if filter.Status != nil {
		query = query.Where(squirrel.Eq{"s.status": string(*filter.Status)})
	}
	if filter.Search != "" {
		pattern := helpers.ContainsPattern(filter.Search)
		query = query.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.email": pattern},
			squirrel.ILike{"s.national_id": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during list")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// UpdateStudent writes every stored field of student
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":               student.Name,
			"national_id":        student.NationalID,
			"email":              student.Email,
			"program":            student.Program,
			"current_rotation":   student.CurrentRotation,
			"training_center_id": student.TrainingCenterID,
			"attendance":         student.Attendance,
			"status":             string(student.Status),
			"enrollment_date":    student.EnrollmentDate,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if verr, ok := dberrors.ToValidationError(err, studentConstraints); ok {
			return verr
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// DeleteStudent deletes a student; its schedule blocks cascade
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := db.Conn(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// StudentExists reports whether a student with id exists
func (r *StudentRepository) StudentExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student exists SQL")
		return false, fmt.Errorf("failed to build student existence query: %w", err)
	}

	var exists bool
	if err := db.Conn(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error checking student existence")
		return false, fmt.Errorf("error checking student existence: %w", err)
	}

	return exists, nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	var status string
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.NationalID,
		&student.Email,
		&student.Program,
		&student.CurrentRotation,
		&student.TrainingCenterID,
		&student.Attendance,
		&status,
		&student.EnrollmentDate,
		&student.TrainingCenterName,
	)
	if err != nil {
		return nil, err
	}
	student.Status = models.StudentStatus(status)
	return student, nil
}
