package services

import (
	"context"

	"github.com/projectmanage/pm-backend/internal/core/domain"
	"github.com/projectmanage/pm-backend/internal/dto"
)

// MilestoneSvcFacade exposes milestone CRUD scoped to a project the requesting
// user owns.
type MilestoneSvcFacade interface {
	CreateMilestone(ctx context.Context, projectID string, req dto.CreateMilestoneRequest, requestingUserID string) (*domain.Milestone, error)
	GetMilestoneByID(ctx context.Context, projectID, milestoneID string, requestingUserID string) (*domain.Milestone, error)
	ListMilestones(ctx context.Context, projectID string, requestingUserID string) ([]domain.Milestone, error)
	UpdateMilestone(ctx context.Context, projectID, milestoneID string, req dto.UpdateMilestoneRequest, requestingUserID string) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, projectID, milestoneID string, requestingUserID string) error
}
