package dto

import "github.com/qfddxs/Hospital/internal/app/models"

// CreateTrainingCenterRequest represents training center creation data.
// Available capacity and status are derived and cannot be supplied.
type CreateTrainingCenterRequest struct {
	Name          string   `json:"name" binding:"required,max=255" example:"Hospital Regional"`
	Location      string   `json:"location" binding:"max=255" example:"Talca"`
	Specialties   []string `json:"specialties" example:"Pediatria,Urgencias"`
	TotalCapacity *int     `json:"totalCapacity" binding:"omitempty,min=0,max=2147483647" example:"10"`
}

// UpdateTrainingCenterRequest carries a full (PUT) or partial (PATCH)
// update. Omitted fields keep their stored values.
type UpdateTrainingCenterRequest struct {
	Name          *string   `json:"name" binding:"omitempty,max=255"`
	Location      *string   `json:"location" binding:"omitempty,max=255"`
	Specialties   *[]string `json:"specialties"`
	TotalCapacity *int      `json:"totalCapacity" binding:"omitempty,min=0,max=2147483647"`
}

// TrainingCenterResponse represents a training center with its derived status
type TrainingCenterResponse struct {
	ID                int64               `json:"id" example:"1"`
	Name              string              `json:"name" example:"Hospital Regional"`
	Location          string              `json:"location" example:"Talca"`
	Specialties       []string            `json:"specialties"`
	TotalCapacity     int                 `json:"totalCapacity" example:"10"`
	AvailableCapacity int                 `json:"availableCapacity" example:"4"`
	Status            models.CenterStatus `json:"status" example:"active" enums:"active,complete"`
}

// NewTrainingCenterResponse maps a model to its response
func NewTrainingCenterResponse(c *models.TrainingCenter) TrainingCenterResponse {
	specialties := c.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return TrainingCenterResponse{
		ID:                c.ID,
		Name:              c.Name,
		Location:          c.Location,
		Specialties:       specialties,
		TotalCapacity:     c.TotalCapacity,
		AvailableCapacity: c.AvailableCapacity,
		Status:            c.Status(),
	}
}

// NewTrainingCenterListResponse maps a slice of models
func NewTrainingCenterListResponse(centers []*models.TrainingCenter) []TrainingCenterResponse {
	out := make([]TrainingCenterResponse, 0, len(centers))
	for _, c := range centers {
		out = append(out, NewTrainingCenterResponse(c))
	}
	return out
}
