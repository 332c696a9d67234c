package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID               int64         `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	NationalID       *string       `json:"nationalId,omitempty" db:"national_id"`
	Email            *string       `json:"email,omitempty" db:"email"`
	Program          string        `json:"program" db:"program"`
	CurrentRotation  *string       `json:"currentRotation,omitempty" db:"current_rotation"`
	TrainingCenterID *int64        `json:"trainingCenterId,omitempty" db:"training_center_id"` // NULL once the center is deleted
	Attendance       float64       `json:"attendance" db:"attendance"`
	Status           StudentStatus `json:"status" db:"status"`
	EnrollmentDate   *time.Time    `json:"enrollmentDate,omitempty" db:"enrollment_date"`

	// Populated by the join on training_centers, no db column
	TrainingCenterName *string `json:"trainingCenterName,omitempty"`
}

// DefaultAttendance is the attendance percentage of a newly created student
const DefaultAttendance = 100.0

// StudentFilter narrows a student listing
type StudentFilter struct {
	TrainingCenterID *int64
	Status           *StudentStatus
	Search           string
}
