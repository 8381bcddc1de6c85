package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"campushub/internal/services"
	"campushub/internal/testutil"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.SetupTestDB(t)
	resolver := services.NewIdentityResolver(gdb, testutil.SuperAdminEmail)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(LoadIdentity(resolver, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client_id": CurrentIdentity(c).ClientID})
	})
	r.GET("/private", ModeratorRequired(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestLoadIdentity_AssignsStableClientID(t *testing.T) {
	c := testutil.NewClient(t, newEngine(t))

	var first, second struct {
		ClientID string `json:"client_id"`
	}
	testutil.AssertJSON(t, c.Do(http.MethodGet, "/whoami", nil), &first)
	testutil.AssertJSON(t, c.Do(http.MethodGet, "/whoami", nil), &second)

	assert.NotEmpty(t, first.ClientID)
	assert.Equal(t, first.ClientID, second.ClientID)
}

func TestModeratorRequired_RejectsAnonymous(t *testing.T) {
	c := testutil.NewClient(t, newEngine(t))

	testutil.AssertStatus(t, c.Do(http.MethodGet, "/private", nil), http.StatusUnauthorized)
}
