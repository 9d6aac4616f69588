package dto

import (
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// CreateCommentRequest adds a comment to a task.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateCommentRequest changes a comment's body. Only the author may do this.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the public shape of a comment, enriched with the author's
// display name.
type CommentResponse struct {
	CommentID string    `json:"commentID"`
	TaskID    string    `json:"taskID"`
	UserID    string    `json:"userID"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCommentResponse converts a domain.Comment to a CommentResponse DTO. The
// author's name is passed in explicitly; the comment service resolves it
// through its user reader rather than any mapper-level lookup.
func ToCommentResponse(c *domain.Comment, userName string) CommentResponse {
	return CommentResponse{
		CommentID: c.CommentID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		UserName:  userName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
