package dto

import (
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// CreateProjectRequest creates a new project owned by the requesting user.
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateProjectRequest updates title/description. Pointers distinguish
// omitted fields from zero values.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Limit     int    `form:"limit,default=20"`
	PageToken string `form:"pageToken"`
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ProjectID   string    `json:"projectID"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"ownerID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListProjectsResponse wraps a page of projects with the cursor for the next page.
type ListProjectsResponse struct {
	Projects      []ProjectResponse `json:"projects"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// ToProjectResponse converts a domain.Project to a ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToListProjectsResponse converts a page of domain projects to the list DTO.
func ToListProjectsResponse(projects []domain.Project, nextPageToken string) ListProjectsResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return ListProjectsResponse{Projects: responses, NextPageToken: nextPageToken}
}
