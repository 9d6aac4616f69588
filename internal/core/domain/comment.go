package domain

import "time"

// Comment is a remark left on a task by a user.
type Comment struct {
	CommentID string    `json:"commentID"`
	TaskID    string    `json:"taskID"`
	UserID    string    `json:"userID"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
