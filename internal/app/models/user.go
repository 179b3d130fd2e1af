package models

import (
	"time"
)

// User defines the identity record based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"jane@scholars.org"` // User's email address, unique
	Password  string    `json:"-" db:"password"`                             // Hashed password (excluded from JSON)
	Name      string    `json:"name" db:"name" example:"Jane Doe"`
	UserType  UserType  `json:"userType" db:"user_type" example:"scholar"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"` // Profile image URL (nullable)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Scholar defines the scholar profile based on the 'scholars' table.
// Exactly one User owns each profile.
type Scholar struct {
	ID           int64         `json:"id" db:"id"`
	UserID       int64         `json:"userId" db:"user_id"`
	Program      string        `json:"program" db:"program"`
	Year         int           `json:"year" db:"year"`
	University   string        `json:"university" db:"university"`
	Location     *string       `json:"location,omitempty" db:"location"`
	Status       ScholarStatus `json:"status" db:"status"`
	StartDate    time.Time     `json:"startDate" db:"start_date"`
	LastActivity *time.Time    `json:"lastActivity,omitempty" db:"last_activity"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
	User         *User         `json:"user,omitempty"` // Relation, no db tag
}

// Staff defines the staff profile based on the 'staff' table
type Staff struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Role       StaffRole `json:"role" db:"role"`
	IsActive   bool      `json:"isActive" db:"is_active"`
	Department *string   `json:"department,omitempty" db:"department"`
	User       *User     `json:"user,omitempty"` // Relation, no db tag
}
