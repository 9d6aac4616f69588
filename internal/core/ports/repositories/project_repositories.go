package repositories

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// SaveProject inserts a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// FindProjectByID retrieves a project by ID. Returns apperrors.ErrNotFound if absent.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectsByOwner lists an owner's projects ordered by creation time
	// descending. nextFrom is the cursor position decoded from a pagination
	// token; zero value means start from the newest.
	FindProjectsByOwner(ctx context.Context, ownerID string, limit int, afterToken string) ([]domain.Project, string, error)

	// ExistsByTitleForOwner reports whether the owner already has a project
	// with this title.
	ExistsByTitleForOwner(ctx context.Context, ownerID string, title string) (bool, error)

	// UpdateProject persists changes to title/description.
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject removes the project and, via FK cascade, its milestones,
	// tasks, and comments.
	DeleteProject(ctx context.Context, projectID string) error
}
