package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/db"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

// Services defined in this package:
// - TrainingCenterService: training centers and their capacity accounting
// - StudentService: students in rotation
// - QuotaRequestService: quota requests from training centers
// - ScheduleBlockService: weekly schedule blocks of students
// - AuthService: token issuing and refresh rotation for API users

// TrainingCenterRepository is the storage used by TrainingCenterService
type TrainingCenterRepository interface {
	CreateTrainingCenter(ctx context.Context, center *models.TrainingCenter) error
	GetTrainingCenterByID(ctx context.Context, id int64) (*models.TrainingCenter, error)
	ListTrainingCenters(ctx context.Context, filter models.TrainingCenterFilter) ([]*models.TrainingCenter, error)
	UpdateTrainingCenter(ctx context.Context, center *models.TrainingCenter) error
	DeleteTrainingCenter(ctx context.Context, id int64) error
	TrainingCenterExists(ctx context.Context, id int64) (bool, error)
}

// StudentRepository is the storage used by StudentService
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	StudentExists(ctx context.Context, id int64) (bool, error)
}

// QuotaRequestRepository is the storage used by QuotaRequestService
type QuotaRequestRepository interface {
	CreateQuotaRequest(ctx context.Context, req *models.QuotaRequest) error
	GetQuotaRequestByID(ctx context.Context, id int64) (*models.QuotaRequest, error)
	ListQuotaRequests(ctx context.Context, filter models.QuotaRequestFilter) ([]*models.QuotaRequest, error)
	UpdateQuotaRequest(ctx context.Context, req *models.QuotaRequest) error
	DeleteQuotaRequest(ctx context.Context, id int64) error
}

// ScheduleBlockRepository is the storage used by ScheduleBlockService
type ScheduleBlockRepository interface {
	CreateScheduleBlock(ctx context.Context, block *models.ScheduleBlock) error
	GetScheduleBlockByID(ctx context.Context, id int64) (*models.ScheduleBlock, error)
	ListScheduleBlocks(ctx context.Context, filter models.ScheduleBlockFilter) ([]*models.ScheduleBlock, error)
	UpdateScheduleBlock(ctx context.Context, block *models.ScheduleBlock) error
	DeleteScheduleBlock(ctx context.Context, id int64) error
}

// inTx runs fn in a transaction; repositories pick the transaction up from ctx
func inTx(ctx context.Context, tx db.Transactor, fn func(ctx context.Context) error) error {
	return tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		return fn(ctx)
	})
}

// checkReference adds a field error when a referenced row does not exist
func checkReference(ctx context.Context, verr *apperrors.ValidationError, field string, id int64, exists func(context.Context, int64) (bool, error)) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", field, err)
	}
	if !ok {
		verr.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
	}
	return nil
}

// checkID rejects ids that cannot exist
func checkID(id int64, notFound error) error {
	if id <= 0 {
		return notFound
	}
	return nil
}
