package repositories

import (
	"github.com/qfddxs/Hospital/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	TrainingCenterRepository *TrainingCenterRepository
	StudentRepository        *StudentRepository
	QuotaRequestRepository   *QuotaRequestRepository
	ScheduleBlockRepository  *ScheduleBlockRepository
	UserRepository           *UserRepository
	TokenRepository          *TokenRepository
}

// NewRepositories initializes all repositories. Inside db.WithTransaction
// each repository switches to the transaction carried by the context.
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		TrainingCenterRepository: NewTrainingCenterRepository(conn),
		StudentRepository:        NewStudentRepository(conn),
		QuotaRequestRepository:   NewQuotaRequestRepository(conn),
		ScheduleBlockRepository:  NewScheduleBlockRepository(conn),
		UserRepository:           NewUserRepository(conn),
		TokenRepository:          NewTokenRepository(conn),
	}
}
