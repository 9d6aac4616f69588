package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/middleware"
)

// TaskHandler handles task CRUD requests under a project.
type TaskHandler struct {
	taskService portssvc.TaskSvcFacade
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(ts portssvc.TaskSvcFacade) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

// registerTaskRoutes nests task routes under the projects group.
func registerTaskRoutes(projects *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := NewTaskHandler(taskService)
	tasks := projects.Group("/:projectID/tasks")
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:taskID", h.GetTask)
		tasks.PUT("/:taskID", h.UpdateTask)
		tasks.DELETE("/:taskID", h.DeleteTask)
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Creates a task in the project, optionally attached to one of the project's milestones.
// @Tags tasks
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param task body dto.CreateTaskRequest true "Task to create"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse "Invalid body or milestone from another project"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), c.Param("projectID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// ListTasks godoc
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} dto.TaskResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Param("projectID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	task, err := h.taskService.GetTaskByID(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// UpdateTask godoc
// @Summary Update a task
// @Description Updates mutable task fields. Setting milestoneID to the empty string detaches the task from its milestone.
// @Tags tasks
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Deletes the task along with its comments.
// @Tags tasks
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
