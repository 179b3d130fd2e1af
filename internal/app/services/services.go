package services

import (
	"time"

	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/auth"
	"github.com/scholarbase/scholarbase/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService         AuthService
	ScholarService      ScholarService
	TaskService         TaskService
	GoalService         GoalService
	RequestService      RequestService
	AnnouncementService AnnouncementService
	InvitationService   InvitationService
}

// NewServices wires all services over the repository container
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emailService email.EmailService, invitationExpiry time.Duration) *Services {
	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, jwtService),
		ScholarService:      NewScholarService(repos.ScholarRepository, repos.UserRepository),
		TaskService:         NewTaskService(repos.TaskRepository, repos.ScholarRepository),
		GoalService:         NewGoalService(repos.GoalRepository, repos.ScholarRepository),
		RequestService:      NewRequestService(repos.RequestRepository, repos.ScholarRepository, emailService),
		AnnouncementService: NewAnnouncementService(repos.AnnouncementRepository, repos.ScholarRepository),
		InvitationService:   NewInvitationService(repos.InvitationRepository, repos.UserRepository, emailService, invitationExpiry),
	}
}
