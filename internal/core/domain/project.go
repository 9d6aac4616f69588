package domain

import "time"

// Project is a top-level container for milestones and tasks, owned by one user.
type Project struct {
	ProjectID   string    `json:"projectID"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
