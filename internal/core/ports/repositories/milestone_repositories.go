package repositories

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// MilestoneRepository defines persistence operations for milestones.
type MilestoneRepository interface {
	// SaveMilestone inserts a new milestone.
	SaveMilestone(ctx context.Context, milestone domain.Milestone) error

	// FindMilestoneByID retrieves a milestone by ID. Returns apperrors.ErrNotFound if absent.
	FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error)

	// FindMilestonesByProject lists a project's milestones ordered by creation time.
	FindMilestonesByProject(ctx context.Context, projectID string) ([]domain.Milestone, error)

	// UpdateMilestone persists changes to mutable fields.
	UpdateMilestone(ctx context.Context, milestone domain.Milestone) error

	// DeleteMilestone removes the milestone; tasks referencing it keep
	// existing with their milestone reference cleared.
	DeleteMilestone(ctx context.Context, milestoneID string) error
}
