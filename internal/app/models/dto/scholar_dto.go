package dto

import (
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
)

// ScholarListParams holds filtering, sorting and pagination parameters for
// the scholar list endpoint.
type ScholarListParams struct {
	Search     string
	Program    *string
	Year       *int
	University *string
	Status     *models.ScholarStatus
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

// GoalSummary is the per-scholar goal completion breakdown
type GoalSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Pending    int `json:"pending"`
}

// TaskSummary is the per-scholar task breakdown. Overdue counts tasks whose
// due date has passed and whose status is not completed.
type TaskSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// ScholarResponse is a scholar joined with its owning user and augmented
// with derived goal/task counters.
type ScholarResponse struct {
	ID           int64                `json:"id"`
	UserID       int64                `json:"userId"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	ImageURL     *string              `json:"imageUrl,omitempty"`
	Program      string               `json:"program"`
	Year         int                  `json:"year"`
	University   string               `json:"university"`
	Location     *string              `json:"location,omitempty"`
	Status       models.ScholarStatus `json:"status"`
	StartDate    time.Time            `json:"startDate"`
	LastActivity *time.Time           `json:"lastActivity,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	Goals        GoalSummary          `json:"goals"`
	Tasks        TaskSummary          `json:"tasks"`
}

// UpdateScholarProfileRequest carries a partial scholar-profile update.
// Name and email live on the users table, the rest on scholars; the update
// runs in one transaction.
type UpdateScholarProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email"`
	Program    *string `json:"program,omitempty"`
	Year       *int    `json:"year,omitempty"`
	University *string `json:"university,omitempty"`
	Location   *string `json:"location,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive on_hold"`
}

// ScholarFilterOptions holds the distinct value sets for the scholar-list
// filter UI. Computed with database-level DISTINCT.
type ScholarFilterOptions struct {
	Programs     []string `json:"programs"`
	Years        []int    `json:"years"`
	Universities []string `json:"universities"`
	Statuses     []string `json:"statuses"`
}
