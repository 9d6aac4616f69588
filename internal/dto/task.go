package dto

import (
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// CreateTaskRequest creates a task within a project, optionally attached to a
// milestone of the same project.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	MilestoneID string     `json:"milestoneID"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest updates a task's mutable fields.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	MilestoneID *string    `json:"milestoneID"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	TaskID      string     `json:"taskID"`
	ProjectID   string     `json:"projectID"`
	MilestoneID string     `json:"milestoneID,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToTaskResponse converts a domain.Task to a TaskResponse DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		ProjectID:   t.ProjectID,
		MilestoneID: t.MilestoneID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToTaskResponse(&tasks[i])
	}
	return responses
}
