package models

import "time"

// Task defines the task model based on the 'tasks' table
type Task struct {
	ID          int64      `json:"id" db:"id"`
	ScholarID   int64      `json:"scholarId" db:"scholar_id"`
	AssignedBy  int64      `json:"assignedBy" db:"assigned_by"` // User who assigned the task
	Title       string     `json:"title" db:"title"`
	Type        string     `json:"type" db:"type"`
	Priority    string     `json:"priority" db:"priority"`
	DueDate     time.Time  `json:"dueDate" db:"due_date"`
	Status      WorkStatus `json:"status" db:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsOverdue reports whether the task is past due and not completed.
// Overdue is derived, never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != WorkStatusCompleted && t.DueDate.Before(now)
}
