package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

type AuthHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewAuthHandler(svc *services.Services, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User          *adminView `json:"user"`
	IsSuperAdmin  bool       `json:"is_super_admin"`
	CommenterName string     `json:"commenter_name"`
	ClientID      string     `json:"client_id"`
}

type adminView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	saveSession(c, h.log, map[string]any{middleware.SessionAdminID: admin.ID})
	h.log.Info("Admin logged in", zap.String("email", admin.Email))

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"user":           adminView{ID: admin.ID, Name: admin.Name, Email: admin.Email},
		"is_super_admin": h.svc.Identities.IsSuperAdminEmail(admin.Email),
	})
}

// Logout POST /api/logout. The commenter name and client id survive.
func (h *AuthHandler) Logout(c *gin.Context) {
	saveSession(c, h.log, map[string]any{middleware.SessionAdminID: nil})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session GET /api/session
func (h *AuthHandler) Session(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	resp := sessionResponse{
		IsSuperAdmin:  id.SuperAdmin,
		CommenterName: id.CommenterName,
		ClientID:      id.ClientID,
	}
	if id.IsModerator() {
		resp.User = &adminView{ID: id.Moderator.ID, Name: id.Moderator.Name, Email: id.Moderator.Email}
	}
	c.JSON(http.StatusOK, resp)
}
