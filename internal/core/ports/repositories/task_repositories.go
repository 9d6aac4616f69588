package repositories

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// SaveTask inserts a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// FindTaskByID retrieves a task by ID. Returns apperrors.ErrNotFound if absent.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// FindTasksByProject lists a project's tasks ordered by creation time.
	FindTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error)

	// UpdateTask persists changes to mutable fields.
	UpdateTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes the task and, via FK cascade, its comments.
	DeleteTask(ctx context.Context, taskID string) error
}
