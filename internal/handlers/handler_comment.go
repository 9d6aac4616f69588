package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/projectmanage/pm-backend/internal/core/ports/services"
	"github.com/projectmanage/pm-backend/internal/dto"
	"github.com/projectmanage/pm-backend/internal/middleware"
)

// CommentHandler handles comment CRUD requests under a task.
type CommentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(cs portssvc.CommentSvcFacade) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

// registerCommentRoutes nests comment routes under the projects group.
func registerCommentRoutes(projects *gin.RouterGroup, commentService portssvc.CommentSvcFacade) {
	h := NewCommentHandler(commentService)
	comments := projects.Group("/:projectID/tasks/:taskID/comments")
	{
		comments.POST("", h.CreateComment)
		comments.GET("", h.ListComments)
		comments.PUT("/:commentID", h.UpdateComment)
		comments.DELETE("/:commentID", h.DeleteComment)
	}
}

// CreateComment godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Param comment body dto.CreateCommentRequest true "Comment to create"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List a task's comments
// @Description Returns the task's comments oldest first, each carrying the author's display name.
// @Tags comments
// @Produce json
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	comments, err := h.commentService.ListComments(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Changes a comment's body. Only the comment's author may do this.
// @Tags comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Param commentID path string true "Comment ID"
// @Param comment body dto.UpdateCommentRequest true "New comment body"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID}/comments/{commentID} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), c.Param("commentID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Removes a comment. Only the comment's author may do this.
// @Tags comments
// @Param projectID path string true "Project ID"
// @Param taskID path string true "Task ID"
// @Param commentID path string true "Comment ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the author"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{projectID}/tasks/{taskID}/comments/{commentID} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.commentService.DeleteComment(c.Request.Context(), c.Param("projectID"), c.Param("taskID"), c.Param("commentID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
