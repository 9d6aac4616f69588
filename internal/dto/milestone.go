package dto

import (
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// CreateMilestoneRequest creates a milestone within a project.
type CreateMilestoneRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateMilestoneRequest updates a milestone's mutable fields.
type UpdateMilestoneRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// MilestoneResponse is the public shape of a milestone.
type MilestoneResponse struct {
	MilestoneID string     `json:"milestoneID"`
	ProjectID   string     `json:"projectID"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToMilestoneResponse converts a domain.Milestone to a MilestoneResponse DTO.
func ToMilestoneResponse(m *domain.Milestone) MilestoneResponse {
	return MilestoneResponse{
		MilestoneID: m.MilestoneID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		Completed:   m.Completed,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMilestoneResponses converts a slice of milestones.
func ToMilestoneResponses(milestones []domain.Milestone) []MilestoneResponse {
	responses := make([]MilestoneResponse, len(milestones))
	for i := range milestones {
		responses[i] = ToMilestoneResponse(&milestones[i])
	}
	return responses
}
