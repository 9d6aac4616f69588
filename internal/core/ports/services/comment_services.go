package services

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/dto"
)

// CommentSvcFacade exposes comment CRUD under a task. Reads require project
// ownership; updates and deletes additionally require comment authorship.
// Responses carry the author's display name, resolved through the user
// reader passed to the service at construction.
type CommentSvcFacade interface {
	CreateComment(ctx context.Context, projectID, taskID string, req dto.CreateCommentRequest, requestingUserID string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, projectID, taskID string, requestingUserID string) ([]dto.CommentResponse, error)
	UpdateComment(ctx context.Context, projectID, taskID, commentID string, req dto.UpdateCommentRequest, requestingUserID string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, projectID, taskID, commentID string, requestingUserID string) error
}
