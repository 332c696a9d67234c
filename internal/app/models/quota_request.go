package models

import "time"

// QuotaRequest is a request from a training center for rotation slots in a specialty
type QuotaRequest struct {
	ID               int64              `json:"id" db:"id"`
	TrainingCenterID int64              `json:"trainingCenterId" db:"training_center_id"`
	Specialty        string             `json:"specialty" db:"specialty"`
	RequestedQuota   int                `json:"requestedQuota" db:"requested_quota"`
	RequestDate      time.Time          `json:"requestDate" db:"request_date"` // set by the database on insert
	Status           QuotaRequestStatus `json:"status" db:"status"`
	Requester        string             `json:"requester" db:"requester"`
	Comment          *string            `json:"comment,omitempty" db:"comment"`

	TrainingCenterName string `json:"trainingCenterName"`
}

// QuotaRequestFilter narrows a quota request listing
type QuotaRequestFilter struct {
	TrainingCenterID *int64
	Status           *QuotaRequestStatus
	Specialty        string
}
