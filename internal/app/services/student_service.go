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

// StudentService defines the interface for student operations
type StudentService interface {
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	ReplaceStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo StudentRepository
	centerRepo  TrainingCenterRepository
	tx          db.Transactor
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, centerRepo TrainingCenterRepository, tx db.Transactor) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		centerRepo:  centerRepo,
		tx:          tx,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// validateStudent validates student data and the referenced center
func (s *studentServiceImpl) validateStudent(ctx context.Context, student *models.Student) error {
	verr := &apperrors.ValidationError{}

	if msg := validation.NewStringValidation(student.Name).WithMaxLength(validation.StudentNameMaxLength).Check(); msg != "" {
		verr.Add("name", msg)
	}
	if msg := validation.NewStringValidation(student.Program).WithMaxLength(validation.ProgramMaxLength).Check(); msg != "" {
		verr.Add("program", msg)
	}
	if student.NationalID != nil {
		if msg := validation.NewStringValidation(*student.NationalID).WithMaxLength(validation.NationalIDMaxLength).Check(); msg != "" {
			verr.Add("nationalId", msg)
		}
	}
	if student.Email != nil {
		if msg := validation.NewStringValidation(*student.Email).WithMaxLength(validation.EmailMaxLength).WithEmail().Check(); msg != "" {
			verr.Add("email", msg)
		}
	}
	if student.CurrentRotation != nil {
		if msg := validation.NewStringValidation(*student.CurrentRotation).WithMaxLength(validation.RotationMaxLength).WithAllowBlank(true).Check(); msg != "" {
			verr.Add("currentRotation", msg)
		}
	}
	if !student.Status.Valid() {
		verr.Add("status", validation.ChoiceMessage(string(student.Status)))
	}
	if student.TrainingCenterID != nil {
		if err := checkReference(ctx, verr, "trainingCenterId", *student.TrainingCenterID, s.centerRepo.TrainingCenterExists); err != nil {
			return err
		}
	}

	return verr.OrNil()
}

// ListStudents retrieves students matching filter ordered by name
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.ListStudents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return dto.NewStudentListResponse(students), nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	if err := checkID(id, apperrors.ErrStudentNotFound); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// CreateStudent creates a student; attendance defaults to 100 and status to active
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}

	student := &models.Student{
		Name:             strings.TrimSpace(req.Name),
		NationalID:       helpers.NilIfBlank(trimPtr(req.NationalID)),
		Email:            helpers.NilIfBlank(trimPtr(req.Email)),
		Program:          strings.TrimSpace(req.Program),
		CurrentRotation:  trimPtr(req.CurrentRotation),
		TrainingCenterID: req.TrainingCenterID,
		Attendance:       models.DefaultAttendance,
		Status:           models.StudentStatusActive,
		EnrollmentDate:   req.EnrollmentDate.DateTime(),
	}
	if req.Attendance != nil {
		student.Attendance = *req.Attendance
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	var created *models.Student
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.validateStudent(ctx, student); err != nil {
			return err
		}
		if err := s.studentRepo.CreateStudent(ctx, student); err != nil {
			return err
		}
		// Re-read to resolve the center name.
		var err error
		created, err = s.studentRepo.GetStudentByID(ctx, student.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(created)
	return &resp, nil
}

// ReplaceStudent applies a full update; name and program are required
func (s *studentServiceImpl) ReplaceStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	return s.update(ctx, id, req, true)
}

// UpdateStudent applies a partial update
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	return s.update(ctx, id, req, false)
}

func (s *studentServiceImpl) update(ctx context.Context, id int64, req *dto.UpdateStudentRequest, full bool) (*dto.StudentResponse, error) {
	if err := checkID(id, apperrors.ErrStudentNotFound); err != nil {
		return nil, err
	}
	if req == nil {
		req = &dto.UpdateStudentRequest{}
	}

	var updated *models.Student
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		student, err := s.studentRepo.GetStudentByID(ctx, id)
		if err != nil {
			return err
		}

		if full {
			verr := &apperrors.ValidationError{}
			if req.Name == nil {
				verr.Add("name", validation.MsgRequired)
			}
			if req.Program == nil {
				verr.Add("program", validation.MsgRequired)
			}
			if verr.HasErrors() {
				return verr
			}
		}

		applyStudentUpdate(student, req)

		if err := s.validateStudent(ctx, student); err != nil {
			return err
		}
		if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
			return err
		}
		updated, err = s.studentRepo.GetStudentByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(updated)
	return &resp, nil
}

func applyStudentUpdate(student *models.Student, req *dto.UpdateStudentRequest) {
	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.NationalID.Set {
		student.NationalID = helpers.NilIfBlank(trimPtr(req.NationalID.Ptr()))
	}
	if req.Email.Set {
		student.Email = helpers.NilIfBlank(trimPtr(req.Email.Ptr()))
	}
	if req.Program != nil {
		student.Program = strings.TrimSpace(*req.Program)
	}
	if req.CurrentRotation.Set {
		student.CurrentRotation = trimPtr(req.CurrentRotation.Ptr())
	}
	if req.TrainingCenterID.Set {
		student.TrainingCenterID = req.TrainingCenterID.Ptr()
		student.TrainingCenterName = nil
	}
	if req.Attendance != nil {
		student.Attendance = *req.Attendance
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.EnrollmentDate.Set {
		if req.EnrollmentDate.Valid {
			student.EnrollmentDate = (&req.EnrollmentDate.Value).DateTime()
		} else {
			student.EnrollmentDate = nil
		}
	}
}

// DeleteStudent deletes a student along with its schedule blocks
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := checkID(id, apperrors.ErrStudentNotFound); err != nil {
		return err
	}
	return s.studentRepo.DeleteStudent(ctx, id)
}
