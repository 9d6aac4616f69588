package repositories

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// CommentRepository defines persistence operations for task comments.
type CommentRepository interface {
	// SaveComment inserts a new comment.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// FindCommentByID retrieves a comment by ID. Returns apperrors.ErrNotFound if absent.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// FindCommentsByTask lists a task's comments ordered by creation time ascending.
	FindCommentsByTask(ctx context.Context, taskID string) ([]domain.Comment, error)

	// UpdateComment persists a changed comment body.
	UpdateComment(ctx context.Context, comment domain.Comment) error

	// DeleteComment removes the comment.
	DeleteComment(ctx context.Context, commentID string) error
}
