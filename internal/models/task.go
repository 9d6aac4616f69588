package models

import (
	"database/sql"
	"time"
)

// Task is the database row shape for the tasks table.
type Task struct {
	TaskID      string         `db:"task_id"`
	ProjectID   string         `db:"project_id"`
	MilestoneID sql.NullString `db:"milestone_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
