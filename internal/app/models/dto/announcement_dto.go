package dto

import (
	"time"

	"github.com/scholarbase/scholarbase/internal/app/models"
)

// FilterInput is one attribute predicate for announcement targeting
type FilterInput struct {
	FilterType  string `json:"filterType" binding:"required,oneof=program year university status location"`
	FilterValue string `json:"filterValue" binding:"required"`
}

// CreateAnnouncementRequest is the payload for creating an announcement.
// Recipients are computed once from the filters at creation time.
type CreateAnnouncementRequest struct {
	Title   string        `json:"title" binding:"required,max=200"`
	Content string        `json:"content" binding:"required"`
	Filters []FilterInput `json:"filters" binding:"dive"`
}

// AnnouncementResponse is an announcement with its filters and the size of
// its materialized recipient snapshot.
type AnnouncementResponse struct {
	ID             int64                       `json:"id"`
	Title          string                      `json:"title"`
	Content        string                      `json:"content"`
	CreatedBy      int64                       `json:"createdBy"`
	CreatedAt      time.Time                   `json:"createdAt"`
	Filters        []models.AnnouncementFilter `json:"filters"`
	RecipientCount int                         `json:"recipientCount"`
}

// AnnouncementFilterOptions holds distinct value sets for the announcement
// targeting UI, deduplicated in memory from the scholar population.
type AnnouncementFilterOptions struct {
	Programs     []string `json:"programs"`
	Years        []string `json:"years"`
	Universities []string `json:"universities"`
	Locations    []string `json:"locations"`
	Statuses     []string `json:"statuses"`
}
