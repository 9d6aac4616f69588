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

type projectService struct {
	projectRepo portsrepo.ProjectRepository
}

// NewProjectService creates the project service facade.
func NewProjectService(projectRepo portsrepo.ProjectRepository) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// requireProjectOwner loads the project and checks that it belongs to the
// requesting user. Every project-scoped operation funnels through here, for
// sibling services too.
func requireProjectOwner(ctx context.Context, repo portsrepo.ProjectRepository, projectID, requestingUserID string) (*domain.Project, error) {
	project, err := repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, ownerID string) (*domain.Project, error) {
	exists, err := s.projectRepo.ExistsByTitleForOwner(ctx, ownerID, req.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check project title: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicate
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string, requestingUserID string) (*domain.Project, error) {
	return requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID)
}

func (s *projectService) ListProjects(ctx context.Context, ownerID string, limit int, pageToken string) ([]domain.Project, string, error) {
	projects, nextToken, err := s.projectRepo.FindProjectsByOwner(ctx, ownerID, limit, pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nextToken, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	project, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != project.Title {
		exists, err := s.projectRepo.ExistsByTitleForOwner(ctx, requestingUserID, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to check project title: %w", err)
		}
		if exists {
			return nil, apperrors.ErrDuplicate
		}
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string, requestingUserID string) error {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
