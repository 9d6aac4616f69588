package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/middleware"
)

// MilestoneHandler handles milestone CRUD requests under a project.
type MilestoneHandler struct {
	milestoneService portssvc.MilestoneSvcFacade
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(ms portssvc.MilestoneSvcFacade) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: ms}
}

// registerMilestoneRoutes nests milestone routes under the projects group.
func registerMilestoneRoutes(projects *gin.RouterGroup, milestoneService portssvc.MilestoneSvcFacade) {
	h := NewMilestoneHandler(milestoneService)
	milestones := projects.Group("/:projectID/milestones")
	{
		milestones.POST("", h.CreateMilestone)
		milestones.GET("", h.ListMilestones)
		milestones.GET("/:milestoneID", h.GetMilestone)
		milestones.PUT("/:milestoneID", h.UpdateMilestone)
		milestones.DELETE("/:milestoneID", h.DeleteMilestone)
	}
}

// CreateMilestone godoc
// @Summary Create a milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param milestone body dto.CreateMilestoneRequest true "Milestone to create"
// @Success 201 {object} dto.MilestoneResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/milestones [post]
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	milestone, err := h.milestoneService.CreateMilestone(c.Request.Context(), c.Param("projectID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMilestoneResponse(milestone))
}

// ListMilestones godoc
// @Summary List a project's milestones
// @Tags milestones
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {array} dto.MilestoneResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/milestones [get]
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	milestones, err := h.milestoneService.ListMilestones(c.Request.Context(), c.Param("projectID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMilestoneResponses(milestones))
}

// GetMilestone godoc
// @Summary Get a milestone
// @Tags milestones
// @Produce json
// @Param projectID path string true "Project ID"
// @Param milestoneID path string true "Milestone ID"
// @Success 200 {object} dto.MilestoneResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/milestones/{milestoneID} [get]
func (h *MilestoneHandler) GetMilestone(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	milestone, err := h.milestoneService.GetMilestoneByID(c.Request.Context(), c.Param("projectID"), c.Param("milestoneID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMilestoneResponse(milestone))
}

// UpdateMilestone godoc
// @Summary Update a milestone
// @Tags milestones
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param milestoneID path string true "Milestone ID"
// @Param milestone body dto.UpdateMilestoneRequest true "Fields to update"
// @Success 200 {object} dto.MilestoneResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/milestones/{milestoneID} [put]
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	milestone, err := h.milestoneService.UpdateMilestone(c.Request.Context(), c.Param("projectID"), c.Param("milestoneID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMilestoneResponse(milestone))
}

// DeleteMilestone godoc
// @Summary Delete a milestone
// @Description Deletes the milestone. Its tasks survive with the milestone reference cleared.
// @Tags milestones
// @Param projectID path string true "Project ID"
// @Param milestoneID path string true "Milestone ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/milestones/{milestoneID} [delete]
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.milestoneService.DeleteMilestone(c.Request.Context(), c.Param("projectID"), c.Param("milestoneID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
