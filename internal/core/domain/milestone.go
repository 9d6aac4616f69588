package domain

import "time"

// Milestone groups tasks within a project around a date range.
type Milestone struct {
	MilestoneID string     `json:"milestoneID"`
	ProjectID   string     `json:"projectID"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
