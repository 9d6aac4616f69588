package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
)

type milestoneService struct {
	milestoneRepo portsrepo.MilestoneRepository
	projectRepo   portsrepo.ProjectRepository
}

// NewMilestoneService creates the milestone service facade.
func NewMilestoneService(milestoneRepo portsrepo.MilestoneRepository, projectRepo portsrepo.ProjectRepository) portssvc.MilestoneSvcFacade {
	return &milestoneService{milestoneRepo: milestoneRepo, projectRepo: projectRepo}
}

var _ portssvc.MilestoneSvcFacade = (*milestoneService)(nil)

// loadMilestoneInProject checks project ownership, then loads the milestone
// and confirms it belongs to that project. A milestone reachable through the
// wrong project's URL is treated as absent.
func (s *milestoneService) loadMilestoneInProject(ctx context.Context, projectID, milestoneID, requestingUserID string) (*domain.Milestone, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}
	milestone, err := s.milestoneRepo.FindMilestoneByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone.ProjectID != projectID {
		return nil, apperrors.ErrNotFound
	}
	return milestone, nil
}

func (s *milestoneService) CreateMilestone(ctx context.Context, projectID string, req dto.CreateMilestoneRequest, requestingUserID string) (*domain.Milestone, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	milestone := domain.Milestone{
		MilestoneID: uuid.NewString(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.milestoneRepo.SaveMilestone(ctx, milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}
	return &milestone, nil
}

func (s *milestoneService) GetMilestoneByID(ctx context.Context, projectID, milestoneID string, requestingUserID string) (*domain.Milestone, error) {
	return s.loadMilestoneInProject(ctx, projectID, milestoneID, requestingUserID)
}

func (s *milestoneService) ListMilestones(ctx context.Context, projectID string, requestingUserID string) ([]domain.Milestone, error) {
	if _, err := requireProjectOwner(ctx, s.projectRepo, projectID, requestingUserID); err != nil {
		return nil, err
	}
	milestones, err := s.milestoneRepo.FindMilestonesByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

func (s *milestoneService) UpdateMilestone(ctx context.Context, projectID, milestoneID string, req dto.UpdateMilestoneRequest, requestingUserID string) (*domain.Milestone, error) {
	milestone, err := s.loadMilestoneInProject(ctx, projectID, milestoneID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		milestone.Title = *req.Title
	}
	if req.Description != nil {
		milestone.Description = *req.Description
	}
	if req.StartDate != nil {
		milestone.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		milestone.DueDate = req.DueDate
	}
	if req.Completed != nil {
		milestone.Completed = *req.Completed
	}
	milestone.UpdatedAt = time.Now()

	if err := s.milestoneRepo.UpdateMilestone(ctx, *milestone); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}
	return milestone, nil
}

func (s *milestoneService) DeleteMilestone(ctx context.Context, projectID, milestoneID string, requestingUserID string) error {
	if _, err := s.loadMilestoneInProject(ctx, projectID, milestoneID, requestingUserID); err != nil {
		return err
	}
	if err := s.milestoneRepo.DeleteMilestone(ctx, milestoneID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}
