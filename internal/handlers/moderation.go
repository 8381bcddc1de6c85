package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

// ModerationHandler manages the blocked commenter list.
type ModerationHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewModerationHandler(svc *services.Services, log *zap.Logger) *ModerationHandler {
	return &ModerationHandler{svc: svc, log: log}
}

type blockRequest struct {
	Name string `json:"name"`
}

// ListBlocked GET /api/blocked-users
func (h *ModerationHandler) ListBlocked(c *gin.Context) {
	entries, err := h.svc.Blocks.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Block POST /api/blocked-users
func (h *ModerationHandler) Block(c *gin.Context) {
	var req blockRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.svc.Blocks.Block(c.Request.Context(), middleware.CurrentIdentity(c), req.Name); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unblock DELETE /api/blocked-users/:name
func (h *ModerationHandler) Unblock(c *gin.Context) {
	if err := h.svc.Blocks.Unblock(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("name")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
