package services

import (
	"context"
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/email"
	"github.com/scholarbase/scholarbase/internal/pkg/logger"
)

// RequestService defines the interface for request operations
type RequestService interface {
	Create(ctx context.Context, req dto.CreateRequestRequest) (*models.Request, error)
	List(ctx context.Context, params dto.RequestListParams) ([]dto.RequestResponse, dto.PaginationInfo, error)
	GetByID(ctx context.Context, id int64) (*dto.RequestResponse, error)
	Review(ctx context.Context, id int64, req dto.ReviewRequestRequest, reviewerID int64) (*dto.RequestResponse, error)
	AddAttachment(ctx context.Context, requestID int64, req dto.AddAttachmentRequest) (*models.Attachment, error)
	Stats(ctx context.Context) (*dto.RequestStats, error)
}

type requestServiceImpl struct {
	requestRepo  repositories.IRequestRepository
	scholarRepo  repositories.IScholarRepository
	emailService email.EmailService
}

// NewRequestService creates a new RequestService
func NewRequestService(requestRepo repositories.IRequestRepository, scholarRepo repositories.IScholarRepository, emailService email.EmailService) RequestService {
	return &requestServiceImpl{
		requestRepo:  requestRepo,
		scholarRepo:  scholarRepo,
		emailService: emailService,
	}
}

func toRequestResponse(details *repositories.RequestDetails, attachments []models.Attachment, auditLog []models.AuditLogEntry) dto.RequestResponse {
	if attachments == nil {
		attachments = []models.Attachment{}
	}
	if auditLog == nil {
		auditLog = []models.AuditLogEntry{}
	}
	return dto.RequestResponse{
		ID:            details.ID,
		ScholarID:     details.ScholarID,
		ScholarName:   details.ScholarName,
		ScholarEmail:  details.ScholarEmail,
		Type:          details.Type,
		Description:   details.Description,
		Priority:      details.Priority,
		Status:        details.Status,
		SubmittedDate: details.SubmittedDate,
		ReviewedBy:    details.ReviewedBy,
		ReviewComment: details.ReviewComment,
		ReviewDate:    details.ReviewDate,
		Attachments:   attachments,
		AuditLog:      auditLog,
	}
}

// Create submits a new request on behalf of a scholar
func (s *requestServiceImpl) Create(ctx context.Context, req dto.CreateRequestRequest) (*models.Request, error) {
	if _, err := s.scholarRepo.GetByID(ctx, req.ScholarID); err != nil {
		return nil, err
	}

	request := &models.Request{
		ScholarID:     req.ScholarID,
		Type:          req.Type,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        models.RequestStatusPending,
		SubmittedDate: time.Now(),
	}

	request, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.scholarRepo.TouchLastActivity(ctx, req.ScholarID)

	return request, nil
}

// List returns a page of requests ordered by status rank then recency,
// enriched with attachments and audit history via two bulk loads.
func (s *requestServiceImpl) List(ctx context.Context, params dto.RequestListParams) ([]dto.RequestResponse, dto.PaginationInfo, error) {
	requests, pagination, err := s.requestRepo.List(ctx, params)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}

	attachments, err := s.requestRepo.AttachmentsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	auditLog, err := s.requestRepo.AuditByRequestIDs(ctx, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = toRequestResponse(r, attachments[r.ID], auditLog[r.ID])
	}

	return responses, pagination, nil
}

// GetByID retrieves one request with its attachments and audit history
func (s *requestServiceImpl) GetByID(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	details, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attachments, err := s.requestRepo.AttachmentsByRequestIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	auditLog, err := s.requestRepo.AuditByRequestIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	response := toRequestResponse(details, attachments[id], auditLog[id])
	return &response, nil
}

// Review applies a status change, appends the audit entry and notifies the
// scholar. The notification is best effort and never fails the review.
func (s *requestServiceImpl) Review(ctx context.Context, id int64, req dto.ReviewRequestRequest, reviewerID int64) (*dto.RequestResponse, error) {
	details, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := models.RequestStatus(req.Status)
	if err := s.requestRepo.Review(ctx, id, details.Status, newStatus, reviewerID, req.Comment); err != nil {
		return nil, err
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}
	if err := s.emailService.SendReviewNotification(details.ScholarEmail, details.ScholarName, details.Type, string(newStatus), comment); err != nil {
		logger.Warn().Err(err).Int64("requestId", id).Msg("Failed to send review notification")
	}

	return s.GetByID(ctx, id)
}

// AddAttachment records object-storage metadata against a request
func (s *requestServiceImpl) AddAttachment(ctx context.Context, requestID int64, req dto.AddAttachmentRequest) (*models.Attachment, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		RequestID: requestID,
		FileName:  req.FileName,
		FileKey:   req.FileKey,
		FileURL:   req.FileURL,
		FileSize:  req.FileSize,
		MimeType:  req.MimeType,
	}
	return s.requestRepo.AddAttachment(ctx, attachment)
}

// Stats summarizes the request population by status
func (s *requestServiceImpl) Stats(ctx context.Context) (*dto.RequestStats, error) {
	return s.requestRepo.Stats(ctx)
}
