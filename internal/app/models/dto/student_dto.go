package dto

import "github.com/qfddxs/Hospital/internal/app/models"

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name             string                `json:"name" binding:"required,max=255" example:"Ana Rojas"`
	NationalID       *string               `json:"nationalId" binding:"omitempty,max=12" example:"12345678-9"`
	Email            *string               `json:"email" example:"ana@example.cl"`
	Program          string                `json:"program" binding:"required,max=100" example:"Enfermeria"`
	CurrentRotation  *string               `json:"currentRotation" binding:"omitempty,max=100"`
	TrainingCenterID *int64                `json:"trainingCenterId" binding:"omitempty,min=1" example:"1"`
	Attendance       *float64              `json:"attendance" example:"100"`
	Status           *models.StudentStatus `json:"status" binding:"omitempty,oneof=active alert inactive" example:"active"`
	EnrollmentDate   *Date                 `json:"enrollmentDate" swaggertype:"string" example:"2024-03-01"`
}

// UpdateStudentRequest carries a full (PUT) or partial (PATCH) update.
// Nullable fields accept an explicit null to clear the stored value.
type UpdateStudentRequest struct {
	Name             *string               `json:"name" binding:"omitempty,max=255"`
	NationalID       Nullable[string]      `json:"nationalId" binding:"omitempty,max=12" swaggertype:"string"`
	Email            Nullable[string]      `json:"email" swaggertype:"string"`
	Program          *string               `json:"program" binding:"omitempty,max=100"`
	CurrentRotation  Nullable[string]      `json:"currentRotation" binding:"omitempty,max=100" swaggertype:"string"`
	TrainingCenterID Nullable[int64]       `json:"trainingCenterId" binding:"omitempty,min=1" swaggertype:"integer"`
	Attendance       *float64              `json:"attendance"`
	Status           *models.StudentStatus `json:"status" binding:"omitempty,oneof=active alert inactive"`
	EnrollmentDate   Nullable[Date]        `json:"enrollmentDate" swaggertype:"string"`
}

// StudentResponse represents a student with the name of its training center
type StudentResponse struct {
	ID                 int64                `json:"id" example:"1"`
	Name               string               `json:"name" example:"Ana Rojas"`
	NationalID         *string              `json:"nationalId" example:"12345678-9"`
	Email              *string              `json:"email" example:"ana@example.cl"`
	Program            string               `json:"program" example:"Enfermeria"`
	CurrentRotation    *string              `json:"currentRotation"`
	TrainingCenterID   *int64               `json:"trainingCenterId" example:"1"`
	TrainingCenterName *string              `json:"trainingCenterName,omitempty" example:"Hospital Regional"`
	Attendance         float64              `json:"attendance" example:"100"`
	Status             models.StudentStatus `json:"status" example:"active" enums:"active,alert,inactive"`
	EnrollmentDate     *Date                `json:"enrollmentDate" swaggertype:"string" example:"2024-03-01"`
}

// NewStudentResponse maps a model to its response
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:                 s.ID,
		Name:               s.Name,
		NationalID:         s.NationalID,
		Email:              s.Email,
		Program:            s.Program,
		CurrentRotation:    s.CurrentRotation,
		TrainingCenterID:   s.TrainingCenterID,
		TrainingCenterName: s.TrainingCenterName,
		Attendance:         s.Attendance,
		Status:             s.Status,
		EnrollmentDate:     DatePtr(s.EnrollmentDate),
	}
}

// NewStudentListResponse maps a slice of models
func NewStudentListResponse(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

