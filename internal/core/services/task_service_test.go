package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/core/services"
	"github.com/projectmanage/pm-backend/internal/dto"
)

// --- Mock TaskRepository ---
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) FindTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

var _ portsrepo.TaskRepository = (*MockTaskRepository)(nil)

// --- Mock MilestoneRepository ---
type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) SaveMilestone(ctx context.Context, milestone domain.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) FindMilestoneByID(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	args := m.Called(ctx, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) FindMilestonesByProject(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

func (m *MockMilestoneRepository) UpdateMilestone(ctx context.Context, milestone domain.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockMilestoneRepository) DeleteMilestone(ctx context.Context, milestoneID string) error {
	args := m.Called(ctx, milestoneID)
	return args.Error(0)
}

var _ portsrepo.MilestoneRepository = (*MockMilestoneRepository)(nil)

// --- Test Suite ---
type TaskServiceTestSuite struct {
	suite.Suite
	mockTaskRepo      *MockTaskRepository
	mockMilestoneRepo *MockMilestoneRepository
	mockProjectRepo   *MockProjectRepository
	service           portssvc.TaskSvcFacade
	ownerID           string
	projectID         string
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.mockMilestoneRepo = new(MockMilestoneRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewTaskService(suite.mockTaskRepo, suite.mockMilestoneRepo, suite.mockProjectRepo)
	suite.ownerID = uuid.NewString()
	suite.projectID = uuid.NewString()
}

func (suite *TaskServiceTestSuite) expectOwnedProject() {
	suite.mockProjectRepo.On("FindProjectByID", mock.Anything, suite.projectID).
		Return(&domain.Project{ProjectID: suite.projectID, OwnerID: suite.ownerID}, nil).Once()
}

// --- CreateTask Tests ---

func (suite *TaskServiceTestSuite) TestCreateTask_WithoutMilestone() {
	ctx := context.Background()
	req := dto.CreateTaskRequest{Title: "Write docs"}

	suite.expectOwnedProject()
	suite.mockTaskRepo.On("SaveTask", ctx, mock.MatchedBy(func(t domain.Task) bool {
		return t.Title == req.Title && t.ProjectID == suite.projectID && t.MilestoneID == ""
	})).Return(nil).Once()

	task, err := suite.service.CreateTask(ctx, suite.projectID, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(suite.projectID, task.ProjectID)
	suite.False(task.Completed)
	suite.mockTaskRepo.AssertExpectations(suite.T())
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestCreateTask_MilestoneOfSameProject() {
	ctx := context.Background()
	milestoneID := uuid.NewString()
	req := dto.CreateTaskRequest{Title: "Design review", MilestoneID: milestoneID}

	suite.expectOwnedProject()
	suite.mockMilestoneRepo.On("FindMilestoneByID", ctx, milestoneID).
		Return(&domain.Milestone{MilestoneID: milestoneID, ProjectID: suite.projectID}, nil).Once()
	suite.mockTaskRepo.On("SaveTask", ctx, mock.MatchedBy(func(t domain.Task) bool {
		return t.MilestoneID == milestoneID
	})).Return(nil).Once()

	task, err := suite.service.CreateTask(ctx, suite.projectID, req, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(milestoneID, task.MilestoneID)
	suite.mockTaskRepo.AssertExpectations(suite.T())
	suite.mockMilestoneRepo.AssertExpectations(suite.T())
}

func (suite *TaskServiceTestSuite) TestCreateTask_MilestoneFromOtherProjectRejected() {
	ctx := context.Background()
	milestoneID := uuid.NewString()
	req := dto.CreateTaskRequest{Title: "Sneaky", MilestoneID: milestoneID}

	suite.expectOwnedProject()
	suite.mockMilestoneRepo.On("FindMilestoneByID", ctx, milestoneID).
		Return(&domain.Milestone{MilestoneID: milestoneID, ProjectID: uuid.NewString()}, nil).Once()

	task, err := suite.service.CreateTask(ctx, suite.projectID, req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(task)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(http.StatusBadRequest, appErr.Code)
	suite.mockTaskRepo.AssertNotCalled(suite.T(), "SaveTask", mock.Anything, mock.Anything)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownMilestoneRejected() {
	ctx := context.Background()
	milestoneID := uuid.NewString()
	req := dto.CreateTaskRequest{Title: "Lost", MilestoneID: milestoneID}

	suite.expectOwnedProject()
	suite.mockMilestoneRepo.On("FindMilestoneByID", ctx, milestoneID).
		Return(nil, apperrors.ErrNotFound).Once()

	task, err := suite.service.CreateTask(ctx, suite.projectID, req, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(task)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(http.StatusBadRequest, appErr.Code)
}

// --- GetTaskByID Tests ---

func (suite *TaskServiceTestSuite) TestGetTaskByID_WrongProjectIsNotFound() {
	ctx := context.Background()
	taskID := uuid.NewString()

	suite.expectOwnedProject()
	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, ProjectID: uuid.NewString()}, nil).Once()

	task, err := suite.service.GetTaskByID(ctx, suite.projectID, taskID, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(task)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateTask Tests ---

func (suite *TaskServiceTestSuite) TestUpdateTask_DetachMilestone() {
	ctx := context.Background()
	taskID := uuid.NewString()
	empty := ""

	suite.expectOwnedProject()
	suite.mockTaskRepo.On("FindTaskByID", ctx, taskID).
		Return(&domain.Task{TaskID: taskID, ProjectID: suite.projectID, MilestoneID: uuid.NewString()}, nil).Once()
	suite.mockTaskRepo.On("UpdateTask", ctx, mock.MatchedBy(func(t domain.Task) bool {
		return t.MilestoneID == ""
	})).Return(nil).Once()

	task, err := suite.service.UpdateTask(ctx, suite.projectID, taskID, dto.UpdateTaskRequest{MilestoneID: &empty}, suite.ownerID)

	suite.Require().NoError(err)
	suite.Empty(task.MilestoneID)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
