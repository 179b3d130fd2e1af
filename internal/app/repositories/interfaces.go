package repositories

import (
	"context"
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
)

// IScholarRepository defines the interface for scholar-related database operations
type IScholarRepository interface {
	List(ctx context.Context, params dto.ScholarListParams) ([]*ScholarDetails, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*ScholarDetails, error)
	GoalSummaries(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error)
	TaskSummaries(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error)
	FilterOptions(ctx context.Context) (*dto.ScholarFilterOptions, error)
	ListForTargeting(ctx context.Context) ([]models.Scholar, error)
	UpdateProfile(ctx context.Context, scholarID int64, patch dto.UpdateScholarProfileRequest) error
	TouchLastActivity(ctx context.Context, scholarID int64)
}

// ITaskRepository defines the interface for task-related database operations
type ITaskRepository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByScholar(ctx context.Context, scholarID int64) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.WorkStatus) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// IGoalRepository defines the interface for goal-related database operations
type IGoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetByID(ctx context.Context, id int64) (*models.Goal, error)
	ListByScholar(ctx context.Context, scholarID int64) ([]*models.Goal, error)
	Update(ctx context.Context, id int64, patch dto.UpdateGoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, id int64) error
}

// IRequestRepository defines the interface for request-related database operations
type IRequestRepository interface {
	List(ctx context.Context, params dto.RequestListParams) ([]*RequestDetails, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*RequestDetails, error)
	Create(ctx context.Context, request *models.Request) (*models.Request, error)
	Review(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error
	AddAttachment(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)
	AttachmentsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error)
	AuditByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error)
	Stats(ctx context.Context) (*dto.RequestStats, error)
}

// IAnnouncementRepository defines the interface for announcement-related database operations
type IAnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement, filters []models.AnnouncementFilter, recipientIDs []int64) (*models.Announcement, error)
	List(ctx context.Context, page, limit int) ([]*models.Announcement, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	FiltersByAnnouncementIDs(ctx context.Context, announcementIDs []int64) (map[int64][]models.AnnouncementFilter, error)
	RecipientCounts(ctx context.Context, announcementIDs []int64) (map[int64]int, error)
	ListForScholar(ctx context.Context, scholarID int64) ([]*models.Announcement, error)
}

// IInvitationRepository defines the interface for invitation-related database operations
type IInvitationRepository interface {
	Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)
	GetByID(ctx context.Context, id int64) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)
	GetPendingByEmail(ctx context.Context, email string) (*models.Invitation, error)
	MarkExpired(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error
	IncrementResend(ctx context.Context, id int64) error
	Accept(ctx context.Context, inv *models.Invitation, user *models.User, prefill *dto.ScholarPrefill) (int64, error)
	List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]*models.Invitation, dto.PaginationInfo, error)
}
