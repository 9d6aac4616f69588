package services

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
	"github.com/projectmanage/pm-backend/internal/dto"
)

// ProjectSvcFacade exposes project CRUD with ownership enforcement. Every
// operation takes the requesting user's ID; acting on another owner's project
// returns apperrors.ErrForbidden.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, ownerID string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, projectID string, requestingUserID string) (*domain.Project, error)
	ListProjects(ctx context.Context, ownerID string, limit int, pageToken string) ([]domain.Project, string, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string, requestingUserID string) error
}
