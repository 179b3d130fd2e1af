package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ScholarRepository      *ScholarRepository
	GoalRepository         *GoalRepository
	TaskRepository         *TaskRepository
	RequestRepository      *RequestRepository
	AnnouncementRepository *AnnouncementRepository
	InvitationRepository   *InvitationRepository
}

// NewRepositories initializes all repositories over one shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ScholarRepository:      NewScholarRepository(db),
		GoalRepository:         NewGoalRepository(db),
		TaskRepository:         NewTaskRepository(db),
		RequestRepository:      NewRequestRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
	}
}
