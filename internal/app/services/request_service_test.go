package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarbase/scholarbase/internal/app/models"
	"github.com/scholarbase/scholarbase/internal/app/models/dto"
	"github.com/scholarbase/scholarbase/internal/app/repositories"
	"github.com/scholarbase/scholarbase/internal/pkg/apperrors"
)

func requestDetails(id int64, status models.RequestStatus) *repositories.RequestDetails {
	return &repositories.RequestDetails{
		Request: models.Request{
			ID:            id,
			ScholarID:     7,
			Type:          "travel_grant",
			Description:   "Conference travel support",
			Priority:      "high",
			Status:        status,
			SubmittedDate: time.Now().Add(-24 * time.Hour),
		},
		ScholarName:  "Ada",
		ScholarEmail: "ada@example.com",
	}
}

func TestRequestCreate_StartsPendingAndTouchesActivity(t *testing.T) {
	var created *models.Request
	requestRepo := &mockRequestRepo{
		createFn: func(ctx context.Context, request *models.Request) (*models.Request, error) {
			request.ID = 4
			created = request
			return request, nil
		},
	}
	var touchedScholar int64
	scholarRepo := &mockScholarRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
			return &repositories.ScholarDetails{ID: id}, nil
		},
		touchLastActivityFn: func(ctx context.Context, scholarID int64) {
			touchedScholar = scholarID
		},
	}
	svc := NewRequestService(requestRepo, scholarRepo, &mockEmailService{})

	request, err := svc.Create(context.Background(), dto.CreateRequestRequest{
		ScholarID:   7,
		Type:        "travel_grant",
		Description: "Conference travel support",
		Priority:    "high",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, created.Status)
	assert.False(t, created.SubmittedDate.IsZero())
	assert.Equal(t, int64(7), touchedScholar)
	assert.Equal(t, int64(4), request.ID)
}

func TestRequestCreate_UnknownScholarRejected(t *testing.T) {
	scholarRepo := &mockScholarRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.ScholarDetails, error) {
			return nil, apperrors.ErrScholarNotFound
		},
	}
	svc := NewRequestService(&mockRequestRepo{}, scholarRepo, &mockEmailService{})

	_, err := svc.Create(context.Background(), dto.CreateRequestRequest{ScholarID: 99})
	assert.ErrorIs(t, err, apperrors.ErrScholarNotFound)
}

func TestRequestReview_RecordsTransitionAndNotifies(t *testing.T) {
	var gotPrevious, gotNew models.RequestStatus
	var gotReviewer int64
	requestRepo := &mockRequestRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.RequestDetails, error) {
			if gotNew != "" {
				return requestDetails(id, gotNew), nil
			}
			return requestDetails(id, models.RequestStatusPending), nil
		},
		reviewFn: func(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error {
			gotPrevious = previousStatus
			gotNew = newStatus
			gotReviewer = reviewerID
			return nil
		},
		attachmentsByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error) {
			return map[int64][]models.Attachment{}, nil
		},
		auditByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error) {
			return map[int64][]models.AuditLogEntry{}, nil
		},
	}
	emailSvc := &mockEmailService{}
	svc := NewRequestService(requestRepo, &mockScholarRepo{}, emailSvc)

	comment := "Budget confirmed"
	resp, err := svc.Review(context.Background(), 4, dto.ReviewRequestRequest{
		Status:  "approved",
		Comment: &comment,
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, gotPrevious)
	assert.Equal(t, models.RequestStatusApproved, gotNew)
	assert.Equal(t, int64(2), gotReviewer)
	assert.Equal(t, models.RequestStatusApproved, resp.Status)

	require.Len(t, emailSvc.reviewEmails, 1)
	assert.Equal(t, "ada@example.com", emailSvc.reviewEmails[0])
	assert.Equal(t, "approved", emailSvc.reviewStatuses[0])
}

func TestRequestReview_NotificationFailureDoesNotFailReview(t *testing.T) {
	requestRepo := &mockRequestRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.RequestDetails, error) {
			return requestDetails(id, models.RequestStatusPending), nil
		},
		reviewFn: func(ctx context.Context, requestID int64, previousStatus, newStatus models.RequestStatus, reviewerID int64, comment *string) error {
			return nil
		},
		attachmentsByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error) {
			return map[int64][]models.Attachment{}, nil
		},
		auditByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error) {
			return map[int64][]models.AuditLogEntry{}, nil
		},
	}
	svc := NewRequestService(requestRepo, &mockScholarRepo{}, &mockEmailService{sendErr: assert.AnError})

	_, err := svc.Review(context.Background(), 4, dto.ReviewRequestRequest{Status: "rejected"}, 2)
	assert.NoError(t, err)
}

func TestRequestList_BulkEnrichment(t *testing.T) {
	requestRepo := &mockRequestRepo{
		listFn: func(ctx context.Context, params dto.RequestListParams) ([]*repositories.RequestDetails, dto.PaginationInfo, error) {
			return []*repositories.RequestDetails{
				requestDetails(1, models.RequestStatusPending),
				requestDetails(2, models.RequestStatusApproved),
			}, dto.PaginationInfo{Page: 1, Limit: 20, TotalItems: 2, TotalPages: 1}, nil
		},
		attachmentsByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.Attachment, error) {
			assert.Equal(t, []int64{1, 2}, requestIDs)
			return map[int64][]models.Attachment{
				1: {{ID: 10, RequestID: 1, FileName: "receipt.pdf"}},
			}, nil
		},
		auditByRequestIDsFn: func(ctx context.Context, requestIDs []int64) (map[int64][]models.AuditLogEntry, error) {
			return map[int64][]models.AuditLogEntry{
				2: {{ID: 20, RequestID: 2, NewStatus: models.RequestStatusApproved}},
			}, nil
		},
	}
	svc := NewRequestService(requestRepo, &mockScholarRepo{}, &mockEmailService{})

	responses, _, err := svc.List(context.Background(), dto.RequestListParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assert.Len(t, responses[0].Attachments, 1)
	assert.Empty(t, responses[0].AuditLog)
	assert.NotNil(t, responses[0].AuditLog, "missing enrichment must serialize as an empty list")
	assert.Len(t, responses[1].AuditLog, 1)
	assert.NotNil(t, responses[1].Attachments)
}

func TestRequestAddAttachment_UnknownRequest(t *testing.T) {
	requestRepo := &mockRequestRepo{
		getByIDFn: func(ctx context.Context, id int64) (*repositories.RequestDetails, error) {
			return nil, apperrors.ErrRequestNotFound
		},
	}
	svc := NewRequestService(requestRepo, &mockScholarRepo{}, &mockEmailService{})

	_, err := svc.AddAttachment(context.Background(), 99, dto.AddAttachmentRequest{
		FileName: "receipt.pdf",
		FileKey:  "requests/99/receipt.pdf",
		FileURL:  "https://storage.example.com/requests/99/receipt.pdf",
	})
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}
