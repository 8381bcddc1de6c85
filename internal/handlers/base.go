package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

// Render helper to inject common variables like the current identity
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	id := middleware.CurrentIdentity(c)
	obj["Identity"] = id
	obj["IsModerator"] = id.IsModerator()
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// respondError writes err as {"error": message}. Rejections carry a message
// meant for the user; anything else is logged and reported generically.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(statusFor(c, se.Kind), gin.H{"error": se.Message})
		return
	}

	log.Error("Operation failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
}

func statusFor(c *gin.Context, kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindMissingReporter:
		return http.StatusBadRequest
	case services.KindAuthorization:
		if middleware.CurrentIdentity(c).IsModerator() {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case services.KindBlockedAuthor:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// bindJSON decodes the request body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

func saveSession(c *gin.Context, log *zap.Logger, values map[string]any) {
	session := sessions.Default(c)
	for k, v := range values {
		if v == nil {
			session.Delete(k)
			continue
		}
		session.Set(k, v)
	}
	if err := session.Save(); err != nil {
		log.Warn("Failed to save session", zap.Error(err))
	}
}
