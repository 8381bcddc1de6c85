package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/config"
	"campushub/internal/services"
	"campushub/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	svc, err := services.New(db, zap.NewNop(), testutil.SuperAdminEmail)
	if err != nil {
		t.Fatalf("Failed to build services: %v", err)
	}
	r, err := New(svc, config.ServerConfig{SessionSecret: "test-secret", SiteURL: "https://news.campus.edu"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build router: %v", err)
	}
	return r
}

func TestBoardEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/session", http.StatusOK},
		{"GET", "/api/posts", http.StatusOK},
		{"GET", "/api/marquees", http.StatusOK},
		{"GET", "/api/authors", http.StatusOK},
		{"GET", "/api/posts/missing", http.StatusNotFound},
		{"GET", "/api/posts/missing/poll", http.StatusNotFound},
		{"POST", "/api/posts", http.StatusUnauthorized},
		{"DELETE", "/api/comments/some-id", http.StatusUnauthorized},
		{"GET", "/api/comments/reported", http.StatusUnauthorized},
		{"GET", "/api/blocked-users", http.StatusUnauthorized},
		{"GET", "/api/admins", http.StatusUnauthorized},
		{"GET", "/api/admin-updates", http.StatusUnauthorized},
		{"GET", "/robots.txt", http.StatusOK},
		{"GET", "/feed.xml", http.StatusOK},
		{"POST", "/api/uploads", http.StatusUnauthorized},
		{"GET", "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}
