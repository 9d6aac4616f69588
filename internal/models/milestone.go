package models

import (
	"database/sql"
	"time"
)

// Milestone is the database row shape for the milestones table.
type Milestone struct {
	MilestoneID string         `db:"milestone_id"`
	ProjectID   string         `db:"project_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	StartDate   sql.NullTime   `db:"start_date"`
	DueDate     sql.NullTime   `db:"due_date"`
	Completed   bool           `db:"completed"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
