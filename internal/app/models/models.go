package models

// UserType distinguishes the two account kinds
type UserType string

const (
	UserTypeStaff   UserType = "staff"
	UserTypeScholar UserType = "scholar"
)

// StaffRole defines the staff access level
type StaffRole string

const (
	StaffRoleAdmin  StaffRole = "admin"
	StaffRoleViewer StaffRole = "viewer"
)

// ScholarStatus represents the enrollment state of a scholar
type ScholarStatus string

const (
	ScholarStatusActive   ScholarStatus = "active"
	ScholarStatusInactive ScholarStatus = "inactive"
	ScholarStatusOnHold   ScholarStatus = "on_hold"
)

// WorkStatus is the shared lifecycle for tasks and goals
type WorkStatus string

const (
	WorkStatusPending    WorkStatus = "pending"
	WorkStatusInProgress WorkStatus = "in_progress"
	WorkStatusCompleted  WorkStatus = "completed"
)

// RequestStatus represents the review state of a scholar request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusReviewed  RequestStatus = "reviewed"
	RequestStatusCommented RequestStatus = "commented"
)

// InvitationStatus represents the lifecycle state of an invitation.
// pending is the only non-terminal state.
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusExpired   InvitationStatus = "expired"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

// FilterType enumerates the scholar attributes an announcement can target
type FilterType string

const (
	FilterTypeProgram    FilterType = "program"
	FilterTypeYear       FilterType = "year"
	FilterTypeUniversity FilterType = "university"
	FilterTypeStatus     FilterType = "status"
	FilterTypeLocation   FilterType = "location"
)

// ValidFilterType reports whether s names a known filter type
func ValidFilterType(s string) bool {
	switch FilterType(s) {
	case FilterTypeProgram, FilterTypeYear, FilterTypeUniversity, FilterTypeStatus, FilterTypeLocation:
		return true
	}
	return false
}
