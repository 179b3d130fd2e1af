package models

import "time"

// Goal defines the goal model based on the 'goals' table.
// Progress is tracked on a single 0-100 scale.
type Goal struct {
	ID          int64      `json:"id" db:"id"`
	ScholarID   int64      `json:"scholarId" db:"scholar_id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	TargetDate  time.Time  `json:"targetDate" db:"target_date"`
	Progress    int        `json:"progress" db:"progress"`
	Status      WorkStatus `json:"status" db:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
