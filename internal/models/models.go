package models

import "time"

// User represents an account. Users are created on first login and are
// identified by email; there is no password credential.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Picture   string    `json:"picture,omitempty" db:"picture"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Session represents one authenticated login. The opaque token is the sole
// bearer credential; possession implies authorization until expiry.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Challenge is a user-defined goal: build N projects over a duration.
type Challenge struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Goals        []string  `json:"goals" db:"goals"`
	Rules        []string  `json:"rules" db:"rules"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Project status values.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the recognized project statuses.
func ValidStatus(s string) bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// URLCheck records the last observed health of a single project URL.
type URLCheck struct {
	URL         string    `json:"url"`
	Status      string    `json:"status"` // online, offline or unknown
	LastChecked time.Time `json:"last_checked"`
}

// URLStatus groups the health of a project's repository and demo links.
type URLStatus struct {
	Repository *URLCheck `json:"repository,omitempty"`
	Demo       *URLCheck `json:"demo,omitempty"`
}

// Project is one unit of work tracked under a challenge.
type Project struct {
	ID                 string     `json:"id" db:"id"`
	ChallengeID        string     `json:"challenge_id" db:"challenge_id"`
	UserID             string     `json:"user_id" db:"user_id"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	RepositoryURL      string     `json:"repository_url" db:"repository_url"`
	DemoURL            string     `json:"demo_url" db:"demo_url"`
	TechStack          []string   `json:"tech_stack" db:"tech_stack"`
	Status             string     `json:"status" db:"status"`
	ProgressPercentage int        `json:"progress_percentage" db:"progress_percentage"`
	URLStatus          *URLStatus `json:"url_status,omitempty" db:"url_status"`
	LastURLCheck       *time.Time `json:"last_url_check,omitempty" db:"last_url_check"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
