package services

import (
	"context"
	"testing"
	"time"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

func newStudentFixture() (StudentService, *fakeStudentRepo) {
	centers := newFakeCenterRepo(&models.TrainingCenter{ID: 1, Name: "Hospital Regional", TotalCapacity: 5, AvailableCapacity: 5})
	students := newFakeStudentRepo(centers)
	return NewStudentService(students, centers, &fakeTx{}), students
}

func TestCreateStudent_Defaults(t *testing.T) {
	svc, _ := newStudentFixture()

	resp, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name:             "Ana Rojas",
		Program:          "Enfermeria",
		NationalID:       ptr("  "),
		TrainingCenterID: ptr(int64(1)),
	})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}
	if resp.Attendance != 100 || resp.Status != models.StudentStatusActive {
		t.Errorf("got attendance=%v status=%s", resp.Attendance, resp.Status)
	}
	if resp.NationalID != nil {
		t.Errorf("blank national id must be stored as null, got %q", *resp.NationalID)
	}
	if resp.TrainingCenterName == nil || *resp.TrainingCenterName != "Hospital Regional" {
		t.Errorf("trainingCenterName = %v", resp.TrainingCenterName)
	}
}

func TestStudent_EmailTrimmedBeforeValidation(t *testing.T) {
	svc, students := newStudentFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		Name:    "Ana Rojas",
		Program: "Enfermeria",
		Email:   ptr(" ana@example.cl "),
	})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}
	if created.Email == nil || *created.Email != "ana@example.cl" {
		t.Errorf("email = %v, want trimmed", created.Email)
	}

	updated, err := svc.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{Email: dto.NewNullable(" ana.rojas@example.cl\t")})
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if stored := students.students[created.ID]; stored.Email == nil || *stored.Email != "ana.rojas@example.cl" {
		t.Errorf("stored email = %v", stored.Email)
	}
	if *updated.Email != "ana.rojas@example.cl" {
		t.Errorf("response email = %q", *updated.Email)
	}
}

func TestCreateStudent_Validation(t *testing.T) {
	svc, students := newStudentFixture()

	_, err := svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Name:             "",
		Program:          "Enfermeria",
		Email:            ptr("not-an-email"),
		TrainingCenterID: ptr(int64(99)),
	})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	for _, field := range []string{"name", "email", "trainingCenterId"} {
		if _, found := verr.Field(field); !found {
			t.Errorf("missing error for %s in %v", field, verr)
		}
	}
	if msg, _ := verr.Field("trainingCenterId"); msg != `Invalid pk "99" - object does not exist.` {
		t.Errorf("trainingCenterId message = %q", msg)
	}
	if len(students.students) != 0 {
		t.Error("nothing must be stored")
	}
}

func TestUpdateStudent_NullClearsFields(t *testing.T) {
	svc, _ := newStudentFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{
		Name:             "Ana Rojas",
		Program:          "Enfermeria",
		Email:            ptr("ana@example.cl"),
		TrainingCenterID: ptr(int64(1)),
		EnrollmentDate:   &dto.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	resp, err := svc.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		Email:            dto.Null[string](),
		TrainingCenterID: dto.Null[int64](),
		EnrollmentDate:   dto.Null[dto.Date](),
		Status:           ptr(models.StudentStatusAlert),
	})
	if err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if resp.Email != nil || resp.TrainingCenterID != nil || resp.TrainingCenterName != nil || resp.EnrollmentDate != nil {
		t.Errorf("fields not cleared: %+v", resp)
	}
	if resp.Status != models.StudentStatusAlert || resp.Name != "Ana Rojas" {
		t.Errorf("got %+v", resp)
	}
}

func TestReplaceStudent_RequiresNameAndProgram(t *testing.T) {
	svc, _ := newStudentFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Ana", Program: "Enfermeria"})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	_, err = svc.ReplaceStudent(ctx, created.ID, &dto.UpdateStudentRequest{Attendance: ptr(80.0)})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("got %v, want name and program", verr)
	}
}
