package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/middleware"
)

// ProjectHandler handles project CRUD requests.
type ProjectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(ps portssvc.ProjectSvcFacade) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// registerProjectRoutes sets up project routes and delegates the nested
// milestone, task, and comment routes onto the same group.
func registerProjectRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewProjectHandler(services.Project)
	projects := rg.Group("/projects")
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:projectID", h.GetProject)
		projects.PUT("/:projectID", h.UpdateProject)
		projects.DELETE("/:projectID", h.DeleteProject)
	}

	registerMilestoneRoutes(projects, services.Milestone)
	registerTaskRoutes(projects, services.Task)
	registerCommentRoutes(projects, services.Comment)
}

// CreateProject godoc
// @Summary Create a project
// @Description Creates a project owned by the caller. Titles are unique per owner.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project to create"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate title"
// @Security BearerAuth
// @Router /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// ListProjects godoc
// @Summary List own projects
// @Description Returns the caller's projects newest first, as a cursor-paginated page.
// @Tags projects
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param pageToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	projects, nextToken, err := h.projectService.ListProjects(c.Request.Context(), userID, params.Limit, params.PageToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects, nextToken))
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("projectID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate title"
// @Security BearerAuth
// @Router /api/projects/{projectID} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("projectID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Deletes the project along with its milestones, tasks, and comments.
// @Tags projects
// @Param projectID path string true "Project ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("projectID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
