package models

import "time"

// Bug statuses accepted by the tracker. The database schema enforces the same set.
const (
	BugStatusOpen       = "open"
	BugStatusInProgress = "in-progress"
	BugStatusResolved   = "resolved"
)

// Bug represents a tracked defect report.
type Bug struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
