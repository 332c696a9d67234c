package services

import (
	"context"
	"math"
	"testing"

	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/apperrors"
)

func TestQuotaRequest_StatusHasNoCapacityEffect(t *testing.T) {
	centers := newFakeCenterRepo(&models.TrainingCenter{ID: 1, Name: "HR", TotalCapacity: 10, AvailableCapacity: 4})
	quotas := newFakeQuotaRepo(centers)
	svc := NewQuotaRequestService(quotas, centers, &fakeTx{})
	ctx := context.Background()

	created, err := svc.CreateQuotaRequest(ctx, &dto.CreateQuotaRequestRequest{
		TrainingCenterID: ptr(int64(1)),
		Specialty:        "Pediatria",
		RequestedQuota:   ptr(3),
		Requester:        "Coordinacion",
	})
	if err != nil {
		t.Fatalf("CreateQuotaRequest() error = %v", err)
	}
	if created.Status != models.QuotaRequestPending || created.TrainingCenterName != "HR" {
		t.Errorf("got %+v", created)
	}
	if created.RequestDate.IsZero() {
		t.Error("request date must be set on creation")
	}

	updated, err := svc.UpdateQuotaRequest(ctx, created.ID, &dto.UpdateQuotaRequestRequest{Status: ptr(models.QuotaRequestApproved)})
	if err != nil {
		t.Fatalf("UpdateQuotaRequest() error = %v", err)
	}
	if updated.Status != models.QuotaRequestApproved {
		t.Errorf("status = %s", updated.Status)
	}
	if !updated.RequestDate.Equal(created.RequestDate.Time) {
		t.Errorf("request date changed: %v -> %v", created.RequestDate, updated.RequestDate)
	}
	if c := centers.centers[1]; c.TotalCapacity != 10 || c.AvailableCapacity != 4 {
		t.Errorf("capacity changed to %d/%d", c.TotalCapacity, c.AvailableCapacity)
	}
}

func TestCreateQuotaRequest_Validation(t *testing.T) {
	centers := newFakeCenterRepo()
	svc := NewQuotaRequestService(newFakeQuotaRepo(centers), centers, &fakeTx{})

	_, err := svc.CreateQuotaRequest(context.Background(), &dto.CreateQuotaRequestRequest{
		TrainingCenterID: ptr(int64(5)),
		Specialty:        "Pediatria",
		RequestedQuota:   ptr(0),
		Requester:        "Coordinacion",
	})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	for _, field := range []string{"requestedQuota", "trainingCenterId"} {
		if _, found := verr.Field(field); !found {
			t.Errorf("missing error for %s in %v", field, verr)
		}
	}
}

func TestReplaceQuotaRequest_RequiresFields(t *testing.T) {
	centers := newFakeCenterRepo(&models.TrainingCenter{ID: 1, Name: "HR"})
	quotas := newFakeQuotaRepo(centers)
	svc := NewQuotaRequestService(quotas, centers, &fakeTx{})
	ctx := context.Background()

	created, err := svc.CreateQuotaRequest(ctx, &dto.CreateQuotaRequestRequest{
		TrainingCenterID: ptr(int64(1)),
		Specialty:        "Pediatria",
		RequestedQuota:   ptr(1),
		Requester:        "Coordinacion",
		Comment:          ptr("urgente"),
	})
	if err != nil {
		t.Fatalf("CreateQuotaRequest() error = %v", err)
	}

	_, err = svc.ReplaceQuotaRequest(ctx, created.ID, &dto.UpdateQuotaRequestRequest{Specialty: ptr("Urgencias")})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if len(verr.Fields) != 3 {
		t.Errorf("got %v, want trainingCenterId, requestedQuota and requester", verr)
	}

	resp, err := svc.UpdateQuotaRequest(ctx, created.ID, &dto.UpdateQuotaRequestRequest{Comment: dto.Null[string]()})
	if err != nil {
		t.Fatalf("UpdateQuotaRequest() error = %v", err)
	}
	if resp.Comment != nil {
		t.Errorf("comment = %q, want cleared", *resp.Comment)
	}
}

func TestCreateQuotaRequest_QuotaFitsIntegerColumn(t *testing.T) {
	centers := newFakeCenterRepo(&models.TrainingCenter{ID: 1, Name: "HR"})
	quotas := newFakeQuotaRepo(centers)
	svc := NewQuotaRequestService(quotas, centers, &fakeTx{})

	_, err := svc.CreateQuotaRequest(context.Background(), &dto.CreateQuotaRequestRequest{
		TrainingCenterID: ptr(int64(1)),
		Specialty:        "Pediatria",
		RequestedQuota:   ptr(math.MaxInt32 + 1),
		Requester:        "Coordinacion",
	})
	verr, ok := apperrors.AsValidationError(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if msg, _ := verr.Field("requestedQuota"); msg != "Ensure this value is less than or equal to 2147483647." {
		t.Errorf("requestedQuota message = %q", msg)
	}
}
