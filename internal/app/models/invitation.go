package models

import "time"

// MaxInvitationResends caps how many times a pending invitation may be resent
const MaxInvitationResends = 5

// Invitation gates account creation for a specific email and role.
// The token is single-use and unique across all invitations.
type Invitation struct {
	ID          int64            `json:"id" db:"id"`
	Email       string           `json:"email" db:"email"`
	UserType    UserType         `json:"userType" db:"user_type"`
	Token       string           `json:"-" db:"token"`
	Status      InvitationStatus `json:"status" db:"status"`
	InvitedBy   int64            `json:"invitedBy" db:"invited_by"`
	ExpiresAt   time.Time        `json:"expiresAt" db:"expires_at"`
	ResentCount int              `json:"resentCount" db:"resent_count"`
	ScholarData []byte           `json:"-" db:"scholar_data"` // JSON blob of pre-fill fields (nullable)
	AcceptedBy  *int64           `json:"acceptedBy,omitempty" db:"accepted_by"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// IsExpired reports whether the invitation's expiry has passed, regardless
// of its stored status. Expiry is enforced lazily.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}
