package dto

import "time"

// CreateGoalRequest is the payload for creating a goal
type CreateGoalRequest struct {
	ScholarID  int64     `json:"scholarId" binding:"required"`
	Title      string    `json:"title" binding:"required,max=200"`
	Category   string    `json:"category" binding:"required"`
	TargetDate time.Time `json:"targetDate" binding:"required"`
}

// UpdateGoalRequest carries a partial goal update. Progress is on a 0-100
// scale. Transitioning status to completed stamps completedAt.
type UpdateGoalRequest struct {
	Title      *string    `json:"title,omitempty"`
	Category   *string    `json:"category,omitempty"`
	TargetDate *time.Time `json:"targetDate,omitempty"`
	Progress   *int       `json:"progress,omitempty" binding:"omitempty,min=0,max=100"`
	Status     *string    `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed"`
}
