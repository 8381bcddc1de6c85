package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

type CommentHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewCommentHandler(svc *services.Services, log *zap.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

type commentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// List GET /api/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.svc.Comments.ListForPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create POST /api/posts/:id/comments. The name is remembered in the
// session and used for later reports.
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	id := middleware.CurrentIdentity(c)
	comment, err := h.svc.Comments.Add(c.Request.Context(), id, c.Param("id"), req.Name, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	saveSession(c, h.log, map[string]any{middleware.SessionCommenterName: id.CommenterName})
	c.JSON(http.StatusCreated, comment)
}

// Report POST /api/comments/:id/report, as the session's commenter name.
func (h *CommentHandler) Report(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if err := h.svc.Comments.Report(c.Request.Context(), c.Param("id"), id.CommenterName); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unreport DELETE /api/comments/:id/reports
func (h *CommentHandler) Unreport(c *gin.Context) {
	if err := h.svc.Comments.Unreport(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.svc.Comments.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListReported GET /api/comments/reported
func (h *CommentHandler) ListReported(c *gin.Context) {
	comments, err := h.svc.Comments.ListReported(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
