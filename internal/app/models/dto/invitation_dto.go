package dto

import (
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
)

// ScholarPrefill carries the profile fields a staff member fills in ahead
// of a scholar accepting their invitation. Stored as a JSON blob on the
// invitation row.
type ScholarPrefill struct {
	Program    string  `json:"program"`
	Year       int     `json:"year"`
	University string  `json:"university"`
	Location   *string `json:"location,omitempty"`
}

// CreateInvitationRequest is the payload for inviting a new user
type CreateInvitationRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	UserType    string          `json:"userType" binding:"required,oneof=staff scholar"`
	ScholarData *ScholarPrefill `json:"scholarData,omitempty"`
}

// ResendInvitationRequest identifies the invitation to resend
type ResendInvitationRequest struct {
	InvitationID int64 `json:"invitationId" binding:"required"`
}

// AcceptInvitationRequest is the signup payload gated by an invitation token
type AcceptInvitationRequest struct {
	Token    string `json:"token" binding:"required,len=32"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// InvitationResponse is the staff-facing view of an invitation
type InvitationResponse struct {
	ID          int64                   `json:"id"`
	Email       string                  `json:"email"`
	UserType    models.UserType         `json:"userType"`
	Status      models.InvitationStatus `json:"status"`
	InvitedBy   int64                   `json:"invitedBy"`
	ExpiresAt   time.Time               `json:"expiresAt"`
	ResentCount int                     `json:"resentCount"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// FromInvitation converts a models.Invitation to an InvitationResponse
func FromInvitation(inv *models.Invitation) InvitationResponse {
	if inv == nil {
		return InvitationResponse{}
	}
	return InvitationResponse{
		ID:          inv.ID,
		Email:       inv.Email,
		UserType:    inv.UserType,
		Status:      inv.Status,
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   inv.ExpiresAt,
		ResentCount: inv.ResentCount,
		CreatedAt:   inv.CreatedAt,
	}
}
