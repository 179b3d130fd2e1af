package models

import "time"

// Request defines a scholar request based on the 'requests' table
type Request struct {
	ID            int64         `json:"id" db:"id"`
	ScholarID     int64         `json:"scholarId" db:"scholar_id"`
	Type          string        `json:"type" db:"type"`
	Description   string        `json:"description" db:"description"`
	Priority      string        `json:"priority" db:"priority"`
	Status        RequestStatus `json:"status" db:"status"`
	SubmittedDate time.Time     `json:"submittedDate" db:"submitted_date"`
	ReviewedBy    *int64        `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewComment *string       `json:"reviewComment,omitempty" db:"review_comment"`
	ReviewDate    *time.Time    `json:"reviewDate,omitempty" db:"review_date"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
}

// Attachment stores object-storage metadata for a request file.
// Only the key/URL strings live here; file bytes stay in object storage.
type Attachment struct {
	ID        int64     `json:"id" db:"id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	FileName  string    `json:"fileName" db:"file_name"`
	FileKey   string    `json:"fileKey" db:"file_key"`
	FileURL   string    `json:"fileUrl" db:"file_url"`
	FileSize  int64     `json:"fileSize" db:"file_size"`
	MimeType  string    `json:"mimeType" db:"mime_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AuditLogEntry is an append-only record of a request status change
type AuditLogEntry struct {
	ID             int64         `json:"id" db:"id"`
	RequestID      int64         `json:"requestId" db:"request_id"`
	ChangedBy      int64         `json:"changedBy" db:"changed_by"`
	PreviousStatus RequestStatus `json:"previousStatus" db:"previous_status"`
	NewStatus      RequestStatus `json:"newStatus" db:"new_status"`
	Comment        *string       `json:"comment,omitempty" db:"comment"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
}
