package models

import "time"

// Announcement defines the announcement model based on the 'announcements' table.
// The recipient set is materialized once at creation time and never
// re-evaluated afterwards.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AnnouncementFilter is one attribute predicate attached to an announcement.
// All filter rows of an announcement are AND-combined.
type AnnouncementFilter struct {
	ID             int64      `json:"id" db:"id"`
	AnnouncementID int64      `json:"announcementId" db:"announcement_id"`
	FilterType     FilterType `json:"filterType" db:"filter_type"`
	FilterValue    string     `json:"filterValue" db:"filter_value"`
}

// AnnouncementRecipient links an announcement to one scholar in its snapshot
type AnnouncementRecipient struct {
	ID             int64 `json:"id" db:"id"`
	AnnouncementID int64 `json:"announcementId" db:"announcement_id"`
	ScholarID      int64 `json:"scholarId" db:"scholar_id"`
}
