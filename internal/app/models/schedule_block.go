package models

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// ScheduleBlock is a weekly time slot a student spends at a training center.
// Overlapping blocks are allowed.
type ScheduleBlock struct {
	ID               int64       `json:"id" db:"id"`
	StudentID        int64       `json:"studentId" db:"student_id"`
	TrainingCenterID int64       `json:"trainingCenterId" db:"training_center_id"`
	Weekday          string      `json:"weekday" db:"weekday"`
	StartTime        pgtype.Time `json:"-" db:"start_time"`
	EndTime          pgtype.Time `json:"-" db:"end_time"`
	Activity         string      `json:"activity" db:"activity"`
}

// ScheduleBlockFilter narrows a schedule block listing
type ScheduleBlockFilter struct {
	StudentID        *int64
	TrainingCenterID *int64
	Weekday          string
}
