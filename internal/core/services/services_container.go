package services

import (
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/platform/config"
)

// NewServiceContainer wires every service implementation from the repository
// provider and returns the container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:        userSvc,
		Token:       NewTokenService(cfg, repos.RefreshTokenRepo),
		GoogleOAuth: NewGoogleOAuthService(cfg),
		Project:     NewProjectService(repos.ProjectRepo),
		Milestone:   NewMilestoneService(repos.MilestoneRepo, repos.ProjectRepo),
		Task:        NewTaskService(repos.TaskRepo, repos.MilestoneRepo, repos.ProjectRepo),
		Comment:     NewCommentService(repos.CommentRepo, repos.TaskRepo, repos.ProjectRepo, userSvc),
	}
}
