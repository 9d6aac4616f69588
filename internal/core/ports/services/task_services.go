package services

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
	"github.com/projectmanage/pm-backend/internal/dto"
)

// TaskSvcFacade exposes task CRUD scoped to a project the requesting user owns.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, projectID string, req dto.CreateTaskRequest, requestingUserID string) (*domain.Task, error)
	GetTaskByID(ctx context.Context, projectID, taskID string, requestingUserID string) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string, requestingUserID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, projectID, taskID string, req dto.UpdateTaskRequest, requestingUserID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string, requestingUserID string) error
}
