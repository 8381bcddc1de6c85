package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campushub/internal/services"
)

// Session keys.
const (
	SessionAdminID       = "admin_id"
	SessionCommenterName = "commenter_name"
	SessionClientID      = "client_id"
)

const IdentityKey = "identity"

// LoadIdentity resolves the session into a *services.Identity and stores it
// on the context. Every browser gets a client id on its first request.
func LoadIdentity(resolver *services.IdentityResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		clientID, _ := session.Get(SessionClientID).(string)
		if clientID == "" {
			clientID = uuid.NewString()
			session.Set(SessionClientID, clientID)
			if err := session.Save(); err != nil {
				log.Warn("Failed to save client id", zap.Error(err))
			}
		}
		adminID, _ := session.Get(SessionAdminID).(string)
		commenterName, _ := session.Get(SessionCommenterName).(string)

		id, err := resolver.Resolve(c.Request.Context(), adminID, commenterName, clientID)
		if err != nil {
			log.Error("Failed to resolve session", zap.Error(err))
			id = services.Anonymous(clientID, commenterName)
		}
		c.Set(IdentityKey, id)

		c.Next()
	}
}

// CurrentIdentity returns the identity set by LoadIdentity, or an anonymous
// one when the middleware did not run.
func CurrentIdentity(c *gin.Context) *services.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(*services.Identity); ok {
			return id
		}
	}
	return services.Anonymous("", "")
}

// ModeratorRequired rejects requests without a signed-in moderator.
func ModeratorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsModerator() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in as an admin."})
			return
		}
		c.Next()
	}
}
