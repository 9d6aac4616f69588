package domain

import "time"

// Task is a unit of work within a project, optionally attached to a milestone
// belonging to the same project.
type Task struct {
	TaskID      string     `json:"taskID"`
	ProjectID   string     `json:"projectID"`
	MilestoneID string     `json:"milestoneID,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
