package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

type MarqueeHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewMarqueeHandler(svc *services.Services, log *zap.Logger) *MarqueeHandler {
	return &MarqueeHandler{svc: svc, log: log}
}

type marqueeRequest struct {
	Text string `json:"text" binding:"required"`
}

// List GET /api/marquees
func (h *MarqueeHandler) List(c *gin.Context) {
	items, err := h.svc.Marquees.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create POST /api/marquees
func (h *MarqueeHandler) Create(c *gin.Context) {
	var req marqueeRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.svc.Marquees.Add(c.Request.Context(), middleware.CurrentIdentity(c), req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Delete DELETE /api/marquees/:id
func (h *MarqueeHandler) Delete(c *gin.Context) {
	if err := h.svc.Marquees.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
