package services

import (
	"context"
	"testing"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

func newScheduleFixture() ScheduleBlockService {
	centers := newFakeCenterRepo(&models.TrainingCenter{ID: 1, Name: "HR"})
	students := newFakeStudentRepo(centers)
	students.students[1] = &models.Student{ID: 1, Name: "Ana", Program: "Enfermeria", Status: models.StudentStatusActive}
	students.nextID = 1
	return NewScheduleBlockService(newFakeBlockRepo(), students, centers, &fakeTx{})
}

func validBlockRequest() *dto.CreateScheduleBlockRequest {
	return &dto.CreateScheduleBlockRequest{
		StudentID:        ptr(int64(1)),
		TrainingCenterID: ptr(int64(1)),
		Weekday:          "Lunes",
		StartTime:        "08:00",
		EndTime:          "13:30:00",
		Activity:         "Turno",
	}
}

func TestCreateScheduleBlock(t *testing.T) {
	svc := newScheduleFixture()

	resp, err := svc.CreateScheduleBlock(context.Background(), validBlockRequest())
	if err != nil {
		t.Fatalf("CreateScheduleBlock() error = %v", err)
	}
	if resp.StartTime != "08:00:00" || resp.EndTime != "13:30:00" {
		t.Errorf("times = %s-%s", resp.StartTime, resp.EndTime)
	}
}

func TestCreateScheduleBlock_OverlapAllowed(t *testing.T) {
	svc := newScheduleFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.CreateScheduleBlock(ctx, validBlockRequest()); err != nil {
			t.Fatalf("block %d: %v", i, err)
		}
	}
	blocks, err := svc.ListScheduleBlocks(ctx, models.ScheduleBlockFilter{})
	if err != nil {
		t.Fatalf("ListScheduleBlocks() error = %v", err)
	}
	if len(blocks) != 2 || blocks[0].ID > blocks[1].ID {
		t.Errorf("got %+v", blocks)
	}
}

func TestCreateScheduleBlock_Validation(t *testing.T) {
	svc := newScheduleFixture()

	req := validBlockRequest()
	req.StudentID = ptr(int64(9))
	req.StartTime = "25:00"
	_, err := svc.CreateScheduleBlock(context.Background(), req)
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	for _, field := range []string{"studentId", "startTime"} {
		if _, found := verr.Field(field); !found {
			t.Errorf("missing error for %s in %v", field, verr)
		}
	}
}

func TestUpdateScheduleBlock(t *testing.T) {
	svc := newScheduleFixture()
	ctx := context.Background()

	created, err := svc.CreateScheduleBlock(ctx, validBlockRequest())
	if err != nil {
		t.Fatalf("CreateScheduleBlock() error = %v", err)
	}

	resp, err := svc.UpdateScheduleBlock(ctx, created.ID, &dto.UpdateScheduleBlockRequest{EndTime: ptr("14:00")})
	if err != nil {
		t.Fatalf("UpdateScheduleBlock() error = %v", err)
	}
	if resp.StartTime != "08:00:00" || resp.EndTime != "14:00:00" || resp.Weekday != "Lunes" {
		t.Errorf("got %+v", resp)
	}

	_, err = svc.ReplaceScheduleBlock(ctx, created.ID, &dto.UpdateScheduleBlockRequest{Weekday: ptr("Martes")})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 5 {
		t.Errorf("got %v, want five required fields", verr)
	}
}
