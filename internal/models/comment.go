package models

import "time"

// Comment is the database row shape for the comments table.
type Comment struct {
	CommentID string    `db:"comment_id"`
	TaskID    string    `db:"task_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
