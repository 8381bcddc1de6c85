package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

// AdminHandler serves admin account management and the internal update feed.
type AdminHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewAdminHandler(svc *services.Services, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

type addAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type adminUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListAdmins GET /api/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.svc.Auth.ListAdmins(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// AddAdmin POST /api/admins
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req addAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.svc.Auth.AddAdmin(c.Request.Context(), middleware.CurrentIdentity(c), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// RemoveAdmin DELETE /api/admins/:email
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	if err := h.svc.Auth.RemoveAdmin(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("email")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListUpdates GET /api/admin-updates
func (h *AdminHandler) ListUpdates(c *gin.Context) {
	updates, err := h.svc.AdminUpdates.List(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updates)
}

// AddUpdate POST /api/admin-updates
func (h *AdminHandler) AddUpdate(c *gin.Context) {
	var req adminUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	update, err := h.svc.AdminUpdates.Add(c.Request.Context(), middleware.CurrentIdentity(c), req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

// DeleteUpdate DELETE /api/admin-updates/:id
func (h *AdminHandler) DeleteUpdate(c *gin.Context) {
	if err := h.svc.AdminUpdates.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
