package models

// TrainingCenter is an institution that hosts students for clinical rotations.
// AvailableCapacity is maintained by the service layer and never set by clients.
type TrainingCenter struct {
	ID                int64    `json:"id" db:"id"`
	Name              string   `json:"name" db:"name"`
	Location          string   `json:"location" db:"location"`
	Specialties       []string `json:"specialties" db:"specialties"`
	TotalCapacity     int      `json:"totalCapacity" db:"total_capacity"`
	AvailableCapacity int      `json:"availableCapacity" db:"available_capacity"`
}

// Status returns the capacity-derived status of the center
func (c *TrainingCenter) Status() CenterStatus {
	return CapacityStatus(c.TotalCapacity, c.AvailableCapacity)
}

// TrainingCenterFilter narrows a training center listing
type TrainingCenterFilter struct {
	Search string
	Status *CenterStatus
}
