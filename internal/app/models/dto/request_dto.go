package dto

import (
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
)

// RequestListParams holds filtering and pagination parameters for the
// request list endpoint.
type RequestListParams struct {
	ScholarID *int64
	Status    *models.RequestStatus
	Type      *string
	Priority  *string
	Search    string
	Page      int
	Limit     int
}

// CreateRequestRequest is the payload for submitting a new request
type CreateRequestRequest struct {
	ScholarID   int64  `json:"scholarId" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
}

// ReviewRequestRequest is the payload for reviewing a request
type ReviewRequestRequest struct {
	Status  string  `json:"status" binding:"required,oneof=approved rejected reviewed commented"`
	Comment *string `json:"comment,omitempty"`
}

// AddAttachmentRequest registers object-storage metadata for a request.
// The file bytes are uploaded directly to object storage; only the
// resulting key/URL strings are recorded here.
type AddAttachmentRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileKey  string `json:"fileKey" binding:"required"`
	FileURL  string `json:"fileUrl" binding:"required,url"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// RequestResponse is a request joined through its scholar to the owning
// user, enriched with attachments and audit history.
type RequestResponse struct {
	ID            int64                  `json:"id"`
	ScholarID     int64                  `json:"scholarId"`
	ScholarName   string                 `json:"scholarName"`
	ScholarEmail  string                 `json:"scholarEmail"`
	Type          string                 `json:"type"`
	Description   string                 `json:"description"`
	Priority      string                 `json:"priority"`
	Status        models.RequestStatus   `json:"status"`
	SubmittedDate time.Time              `json:"submittedDate"`
	ReviewedBy    *int64                 `json:"reviewedBy,omitempty"`
	ReviewComment *string                `json:"reviewComment,omitempty"`
	ReviewDate    *time.Time             `json:"reviewDate,omitempty"`
	Attachments   []models.Attachment    `json:"attachments"`
	AuditLog      []models.AuditLogEntry `json:"auditLog"`
}

// RequestStats summarizes the request population by status
type RequestStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
