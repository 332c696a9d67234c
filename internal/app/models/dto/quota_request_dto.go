package dto

import "github.com/qfddxs/Hospital/internal/app/models"

// CreateQuotaRequestRequest represents quota request creation data. The
// request date is set by the server.
type CreateQuotaRequestRequest struct {
	TrainingCenterID *int64                     `json:"trainingCenterId" binding:"required,min=1" example:"1"`
	Specialty        string                     `json:"specialty" binding:"required,max=100" example:"Pediatria"`
	RequestedQuota   *int                       `json:"requestedQuota" binding:"required,min=1,max=2147483647" example:"3"`
	Status           *models.QuotaRequestStatus `json:"status" binding:"omitempty,oneof=pending approved rejected" example:"pending"`
	Requester        string                     `json:"requester" binding:"required,max=200" example:"Coordinacion Enfermeria"`
	Comment          *string                    `json:"comment"`
}

// UpdateQuotaRequestRequest carries a full (PUT) or partial (PATCH) update
type UpdateQuotaRequestRequest struct {
	TrainingCenterID *int64                     `json:"trainingCenterId" binding:"omitempty,min=1"`
	Specialty        *string                    `json:"specialty" binding:"omitempty,max=100"`
	RequestedQuota   *int                       `json:"requestedQuota" binding:"omitempty,min=1,max=2147483647"`
	Status           *models.QuotaRequestStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	Requester        *string                    `json:"requester" binding:"omitempty,max=200"`
	Comment          Nullable[string]           `json:"comment" swaggertype:"string"`
}

// QuotaRequestResponse represents a quota request with its center name
type QuotaRequestResponse struct {
	ID                 int64                     `json:"id" example:"1"`
	TrainingCenterID   int64                     `json:"trainingCenterId" example:"1"`
	TrainingCenterName string                    `json:"trainingCenterName" example:"Hospital Regional"`
	Specialty          string                    `json:"specialty" example:"Pediatria"`
	RequestedQuota     int                       `json:"requestedQuota" example:"3"`
	RequestDate        Date                      `json:"requestDate" swaggertype:"string" example:"2024-03-01"`
	Status             models.QuotaRequestStatus `json:"status" example:"pending" enums:"pending,approved,rejected"`
	Requester          string                    `json:"requester" example:"Coordinacion Enfermeria"`
	Comment            *string                   `json:"comment"`
}

// NewQuotaRequestResponse maps a model to its response
func NewQuotaRequestResponse(q *models.QuotaRequest) QuotaRequestResponse {
	return QuotaRequestResponse{
		ID:                 q.ID,
		TrainingCenterID:   q.TrainingCenterID,
		TrainingCenterName: q.TrainingCenterName,
		Specialty:          q.Specialty,
		RequestedQuota:     q.RequestedQuota,
		RequestDate:        NewDate(q.RequestDate),
		Status:             q.Status,
		Requester:          q.Requester,
		Comment:            q.Comment,
	}
}

// NewQuotaRequestListResponse maps a slice of models
func NewQuotaRequestListResponse(requests []*models.QuotaRequest) []QuotaRequestResponse {
	out := make([]QuotaRequestResponse, 0, len(requests))
	for _, q := range requests {
		out = append(out, NewQuotaRequestResponse(q))
	}
	return out
}
