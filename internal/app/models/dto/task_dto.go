package dto

import "time"

// CreateTaskRequest is the payload for assigning a task to a scholar
type CreateTaskRequest struct {
	ScholarID int64     `json:"scholarId" binding:"required"`
	Title     string    `json:"title" binding:"required,max=200"`
	Type      string    `json:"type" binding:"required"`
	Priority  string    `json:"priority" binding:"required,oneof=low medium high"`
	DueDate   time.Time `json:"dueDate" binding:"required"`
}

// UpdateTaskStatusRequest carries the new status for a task.
// Any status may be set regardless of the current one.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}
