package services

import (
	"context"
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
)

// Hand-written function-field mocks for the repository interfaces. Tests
// set only the functions a scenario touches; calling an unset function
// panics, which surfaces unexpected repository access.

type mockUserRepo struct {
	getByIDFn          func(ctx context.Context, id int64) (*models.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*models.User, error)
	emailExistsFn      func(ctx context.Context, email string) (bool, error)
	getStaffByUserIDFn func(ctx context.Context, userID int64) (*models.Staff, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func (m *mockUserRepo) GetStaffByUserID(ctx context.Context, userID int64) (*models.Staff, error) {
	return m.getStaffByUserIDFn(ctx, userID)
}

type mockInvitationRepo struct {
	createFn            func(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)
	getByIDFn           func(ctx context.Context, id int64) (*models.Invitation, error)
	getByTokenFn        func(ctx context.Context, token string) (*models.Invitation, error)
	getPendingByEmailFn func(ctx context.Context, email string) (*models.Invitation, error)
	markExpiredFn       func(ctx context.Context, id int64) error
	updateStatusFn      func(ctx context.Context, id int64, status models.InvitationStatus) error
	incrementResendFn   func(ctx context.Context, id int64) error
	acceptFn            func(ctx context.Context, inv *models.Invitation, user *models.User, prefill *dto.ScholarPrefill) (int64, error)
	listFn              func(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]*models.Invitation, dto.PaginationInfo, error)
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	return m.createFn(ctx, inv)
}

func (m *mockInvitationRepo) GetByID(ctx context.Context, id int64) (*models.Invitation, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockInvitationRepo) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	return m.getByTokenFn(ctx, token)
}

func (m *mockInvitationRepo) GetPendingByEmail(ctx context.Context, email string) (*models.Invitation, error) {
	return m.getPendingByEmailFn(ctx, email)
}

func (m *mockInvitationRepo) MarkExpired(ctx context.Context, id int64) error {
	return m.markExpiredFn(ctx, id)
}

func (m *mockInvitationRepo) UpdateStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockInvitationRepo) IncrementResend(ctx context.Context, id int64) error {
	return m.incrementResendFn(ctx, id)
}

func (m *mockInvitationRepo) Accept(ctx context.Context, inv *models.Invitation, user *models.User, prefill *dto.ScholarPrefill) (int64, error) {
	return m.acceptFn(ctx, inv, user, prefill)
}

func (m *mockInvitationRepo) List(ctx context.Context, status *models.InvitationStatus, page, limit int) ([]*models.Invitation, dto.PaginationInfo, error) {
	return m.listFn(ctx, status, page, limit)
}

type mockScholarRepo struct {
	listFn              func(ctx context.Context, params dto.ScholarListParams) ([]*repositories.ScholarDetails, dto.PaginationInfo, error)
	getByIDFn           func(ctx context.Context, id int64) (*repositories.ScholarDetails, error)
	goalSummariesFn     func(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error)
	taskSummariesFn     func(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error)
	filterOptionsFn     func(ctx context.Context) (*dto.ScholarFilterOptions, error)
	listForTargetingFn  func(ctx context.Context) ([]models.Scholar, error)
	updateProfileFn     func(ctx context.Context, scholarID int64, patch dto.UpdateScholarProfileRequest) error
	touchLastActivityFn func(ctx context.Context, scholarID int64)
}

func (m *mockScholarRepo) List(ctx context.Context, params dto.ScholarListParams) ([]*repositories.ScholarDetails, dto.PaginationInfo, error) {
	return m.listFn(ctx, params)
}

func (m *mockScholarRepo) GetByID(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockScholarRepo) GoalSummaries(ctx context.Context, scholarIDs []int64) (map[int64]dto.GoalSummary, error) {
	return m.goalSummariesFn(ctx, scholarIDs)
}

func (m *mockScholarRepo) TaskSummaries(ctx context.Context, scholarIDs []int64, now time.Time) (map[int64]dto.TaskSummary, error) {
	return m.taskSummariesFn(ctx, scholarIDs, now)
}

func (m *mockScholarRepo) FilterOptions(ctx context.Context) (*dto.ScholarFilterOptions, error) {
	return m.filterOptionsFn(ctx)
}

func (m *mockScholarRepo) ListForTargeting(ctx context.Context) ([]models.Scholar, error) {
	return m.listForTargetingFn(ctx)
}

func (m *mockScholarRepo) UpdateProfile(ctx context.Context, scholarID int64, patch dto.UpdateScholarProfileRequest) error {
	return m.updateProfileFn(ctx, scholarID, patch)
}

func (m *mockScholarRepo) TouchLastActivity(ctx context.Context, scholarID int64) {
	if m.touchLastActivityFn != nil {
		m.touchLastActivityFn(ctx, scholarID)
	}
}

type mockTaskRepo struct {
	createFn        func(ctx context.Context, task *models.Task) (*models.Task, error)
	getByIDFn       func(ctx context.Context, id int64) (*models.Task, error)
	listByScholarFn func(ctx context.Context, scholarID int64) ([]*models.Task, error)
	updateStatusFn  func(ctx context.Context, id int64, status models.WorkStatus) (*models.Task, error)
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	return m.createFn(ctx, task)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTaskRepo) ListByScholar(ctx context.Context, scholarID int64) ([]*models.Task, error) {
	return m.listByScholarFn(ctx, scholarID)
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id int64, status models.WorkStatus) (*models.Task, error) {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockAnnouncementRepo struct {
	createFn                   func(ctx context.Context, announcement *models.Announcement, filters []models.AnnouncementFilter, recipientIDs []int64) (*models.Announcement, error)
	listFn                     func(ctx context.Context, page, limit int) ([]*models.Announcement, dto.PaginationInfo, error)
	getByIDFn                  func(ctx context.Context, id int64) (*models.Announcement, error)
	filtersByAnnouncementIDsFn func(ctx context.Context, announcementIDs []int64) (map[int64][]models.AnnouncementFilter, error)
	recipientCountsFn          func(ctx context.Context, announcementIDs []int64) (map[int64]int, error)
	listForScholarFn           func(ctx context.Context, scholarID int64) ([]*models.Announcement, error)
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, announcement *models.Announcement, filters []models.AnnouncementFilter, recipientIDs []int64) (*models.Announcement, error) {
	return m.createFn(ctx, announcement, filters, recipientIDs)
}

func (m *mockAnnouncementRepo) List(ctx context.Context, page, limit int) ([]*models.Announcement, dto.PaginationInfo, error) {
	return m.listFn(ctx, page, limit)
}

func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAnnouncementRepo) FiltersByAnnouncementIDs(ctx context.Context, announcementIDs []int64) (map[int64][]models.AnnouncementFilter, error) {
	return m.filtersByAnnouncementIDsFn(ctx, announcementIDs)
}

func (m *mockAnnouncementRepo) RecipientCounts(ctx context.Context, announcementIDs []int64) (map[int64]int, error) {
	return m.recipientCountsFn(ctx, announcementIDs)
}

func (m *mockAnnouncementRepo) ListForScholar(ctx context.Context, scholarID int64) ([]*models.Announcement, error) {
	return m.listForScholarFn(ctx, scholarID)
}

type mockRequestRepo struct {
	listFn                    func(ctx context.Context, params dto.RequestListParams) ([]*repositories.RequestDetails, dto.PaginationInfo, error)
	getByIDFn                 func(ctx context.Context, id int64) (*repositories.RequestDetails, error)
	createFn                  func(ctx context.Context, request *models.Request) (*models.Request, error)
	reviewFn                  func(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error
	addAttachmentFn           func(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)
	attachmentsByRequestIDsFn func(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error)
	auditByRequestIDsFn       func(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error)
	statsFn                   func(ctx context.Context) (*dto.RequestStats, error)
}

func (m *mockRequestRepo) List(ctx context.Context, params dto.RequestListParams) ([]*repositories.RequestDetails, dto.PaginationInfo, error) {
	return m.listFn(ctx, params)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id int64) (*repositories.RequestDetails, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockRequestRepo) Create(ctx context.Context, request *models.Request) (*models.Request, error) {
	return m.createFn(ctx, request)
}

func (m *mockRequestRepo) Review(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error {
	return m.reviewFn(ctx, requestID, previousStatus, newStatus, reviewerID, comment)
}

func (m *mockRequestRepo) AddAttachment(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {
	return m.addAttachmentFn(ctx, attachment)
}

func (m *mockRequestRepo) AttachmentsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error) {
	return m.attachmentsByRequestIDsFn(ctx, requestIDs)
}

func (m *mockRequestRepo) AuditByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error) {
	return m.auditByRequestIDsFn(ctx, requestIDs)
}

func (m *mockRequestRepo) Stats(ctx context.Context) (*dto.RequestStats, error) {
	return m.statsFn(ctx)
}

// mockEmailService records outgoing sends and optionally fails them
type mockEmailService struct {
	invitationEmails []string
	invitationTokens []string
	reviewEmails     []string
	reviewStatuses   []string
	sendErr          error
}

func (m *mockEmailService) SendInvitationEmail(toEmail, userType, token string) error {
	m.invitationEmails = append(m.invitationEmails, toEmail)
	m.invitationTokens = append(m.invitationTokens, token)
	return m.sendErr
}

func (m *mockEmailService) SendReviewNotification(toEmail, toName, requestType, status, comment string) error {
	m.reviewEmails = append(m.reviewEmails, toEmail)
	m.reviewStatuses = append(m.reviewStatuses, status)
	return m.sendErr
}
