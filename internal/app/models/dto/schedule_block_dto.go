package dto

import (
	"github.com/qfddxs/Hospital/internal/app/models"
	"github.com/qfddxs/Hospital/internal/pkg/helpers"
)

// CreateScheduleBlockRequest represents schedule block creation data.
// Times are "HH:MM" or "HH:MM:SS".
type CreateScheduleBlockRequest struct {
	StudentID        *int64 `json:"studentId" binding:"required,min=1" example:"1"`
	TrainingCenterID *int64 `json:"trainingCenterId" binding:"required,min=1" example:"1"`
	Weekday          string `json:"weekday" binding:"required,max=10" example:"Lunes"`
	StartTime        string `json:"startTime" binding:"required,clocktime" example:"08:00"`
	EndTime          string `json:"endTime" binding:"required,clocktime" example:"13:00"`
	Activity         string `json:"activity" binding:"required,max=200" example:"Turno de urgencias"`
}

// UpdateScheduleBlockRequest carries a full (PUT) or partial (PATCH) update
type UpdateScheduleBlockRequest struct {
	StudentID        *int64  `json:"studentId" binding:"omitempty,min=1"`
	TrainingCenterID *int64  `json:"trainingCenterId" binding:"omitempty,min=1"`
	Weekday          *string `json:"weekday" binding:"omitempty,max=10"`
	StartTime        *string `json:"startTime" binding:"omitempty,clocktime"`
	EndTime          *string `json:"endTime" binding:"omitempty,clocktime"`
	Activity         *string `json:"activity" binding:"omitempty,max=200"`
}

// ScheduleBlockResponse represents a schedule block
type ScheduleBlockResponse struct {
	ID               int64  `json:"id" example:"1"`
	StudentID        int64  `json:"studentId" example:"1"`
	TrainingCenterID int64  `json:"trainingCenterId" example:"1"`
	Weekday          string `json:"weekday" example:"Lunes"`
	StartTime        string `json:"startTime" example:"08:00:00"`
	EndTime          string `json:"endTime" example:"13:00:00"`
	Activity         string `json:"activity" example:"Turno de urgencias"`
}

// NewScheduleBlockResponse maps a model to its response
func NewScheduleBlockResponse(b *models.ScheduleBlock) ScheduleBlockResponse {
	return ScheduleBlockResponse{
		ID:               b.ID,
		StudentID:        b.StudentID,
		TrainingCenterID: b.TrainingCenterID,
		Weekday:          b.Weekday,
		StartTime:        helpers.FormatClockTime(b.StartTime),
		EndTime:          helpers.FormatClockTime(b.EndTime),
		Activity:         b.Activity,
	}
}

// NewScheduleBlockListResponse maps a slice of models
func NewScheduleBlockListResponse(blocks []*models.ScheduleBlock) []ScheduleBlockResponse {
	out := make([]ScheduleBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, NewScheduleBlockResponse(b))
	}
	return out
}
