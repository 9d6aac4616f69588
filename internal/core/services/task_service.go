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

type taskService struct {
	taskRepo      portsrepo.TaskRepository
	milestoneRepo portsrepo.MilestoneRepository
	projectRepo   portsrepo.ProjectRepository
}

// NewTaskService creates the task service facade.
func NewTaskService(taskRepo portsrepo.TaskRepository, milestoneRepo portsrepo.MilestoneRepository, projectRepo portsrepo.ProjectRepository) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, milestoneRepo: milestoneRepo, projectRepo: projectRepo}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// validateMilestoneRef checks that a non-empty milestone reference points at a
// milestone of the same project. Cross-project references are a validation
// error, not a not-found, so the caller learns why the request was rejected.
func (s *taskService) validateMilestoneRef(ctx context.Context, projectID, milestoneID string) error {
	if milestoneID == "" {
		return nil
	}
	milestone, err := s.milestoneRepo.FindMilestoneByID(ctx, milestoneID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBadRequestError("milestone does not exist")
		}
		return err
	}
	if milestone.ProjectID != projectID {
		return apperrors.NewBadRequestError("milestone belongs to a different project")
	}
	return nil
}

func (s *taskService) loadTaskInProject(ctx context.Context, projectID, taskID, requestingUserID string) (*domain.Task, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

func (s *taskService) CreateTask(ctx context.Context, projectID string, req dto.CreateTaskRequest, requestingUserID string) (*domain.Task, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}
	if err := s.validateMilestoneRef(ctx, projectID, req.MilestoneID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		ProjectID:   projectID,
		MilestoneID: req.MilestoneID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, projectID, taskID string, requestingUserID string) (*domain.Task, error) {
	return s.loadTaskInProject(ctx, projectID, taskID, requestingUserID)
}

func (s *taskService) ListTasks(ctx context.Context, projectID string, requestingUserID string) ([]domain.Task, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.FindTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, projectID, taskID string, req dto.UpdateTaskRequest, requestingUserID string) (*domain.Task, error) {
	task, err := s.loadTaskInProject(ctx, projectID, taskID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.MilestoneID != nil {
		// Empty string detaches the task from its milestone.
		if err := s.validateMilestoneRef(ctx, projectID, *req.MilestoneID); err != nil {
			return nil, err
		}
		task.MilestoneID = *req.MilestoneID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, projectID, taskID string, requestingUserID string) error {
	if _, err := s.loadTaskInProject(ctx, projectID, taskID, requestingUserID); err != nil {
		return err
	}
	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
