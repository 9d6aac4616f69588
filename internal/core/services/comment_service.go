package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
)

type commentService struct {
	commentRepo portsrepo.CommentRepository
	taskRepo    portsrepo.TaskRepository
	projectRepo portsrepo.ProjectRepository
	users       portssvc.UserReaderSvc
}

// NewCommentService creates the comment service facade. The user reader
// resolves author display names for responses.
func NewCommentService(commentRepo portsrepo.CommentRepository, taskRepo portsrepo.TaskRepository, projectRepo portsrepo.ProjectRepository, users portssvc.UserReaderSvc) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		users:       users,
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

// requireTaskInProject checks project ownership and that the task lives in
// that project.
func (s *commentService) requireTaskInProject(ctx context.Context, projectID, taskID, requestingUserID string) error {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return err
	}
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ProjectID != projectID {
		return apperrors.ErrNotFound
	}
	return nil
}

// authorName resolves a comment author's display name, falling back to the
// bare user ID when the account has since been removed.
func (s *commentService) authorName(ctx context.Context, userID string) string {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return userID
	}
	if user.Name != "" {
		return user.Name
	}
	return user.Username
}

func (s *commentService) CreateComment(ctx context.Context, projectID, taskID string, req dto.CreateCommentRequest, requestingUserID string) (*dto.CommentResponse, error) {
	if err := s.requireTaskInProject(ctx, projectID, taskID, requestingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID: uuid.NewString(),
		TaskID:    taskID,
		UserID:    requestingUserID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	resp := dto.ToCommentResponse(&comment, s.authorName(ctx, requestingUserID))
	return &resp, nil
}

func (s *commentService) ListComments(ctx context.Context, projectID, taskID string, requestingUserID string) ([]dto.CommentResponse, error) {
	if err := s.requireTaskInProject(ctx, projectID, taskID, requestingUserID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.FindCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	// A task's comments typically share one or two authors; cache the
	// lookups per request.
	names := make(map[string]string, 2)
	responses := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		name, ok := names[comments[i].UserID]
		if !ok {
			name = s.authorName(ctx, comments[i].UserID)
			names[comments[i].UserID] = name
		}
		responses[i] = dto.ToCommentResponse(&comments[i], name)
	}
	return responses, nil
}

func (s *commentService) loadOwnComment(ctx context.Context, projectID, taskID, commentID, requestingUserID string) (*domain.Comment, error) {
	if err := s.requireTaskInProject(ctx, projectID, taskID, requestingUserID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.TaskID != taskID {
		return nil, apperrors.ErrNotFound
	}
	if comment.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, projectID, taskID, commentID string, req dto.UpdateCommentRequest, requestingUserID string) (*dto.CommentResponse, error) {
	comment, err := s.loadOwnComment(ctx, projectID, taskID, commentID, requestingUserID)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.UpdateComment(ctx, *comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	resp := dto.ToCommentResponse(comment, s.authorName(ctx, requestingUserID))
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, projectID, taskID, commentID string, requestingUserID string) error {
	if _, err := s.loadOwnComment(ctx, projectID, taskID, commentID, requestingUserID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
