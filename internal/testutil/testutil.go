// Package testutil holds shared fixtures for package tests: an in-memory
// sqlite database with the full schema, seed helpers and an HTTP client that
// keeps session cookies between requests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campushub/internal/db"
	"campushub/internal/models"
	"campushub/internal/utils"
)

const (
	SuperAdminEmail    = "admin@campus.edu"
	SuperAdminPassword = "admin-pass"
)

// SetupTestDB opens a private in-memory database with every table migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

// CreateTestAdmin inserts an admin account with a hashed password.
func CreateTestAdmin(t *testing.T, gdb *gorm.DB, name, email, password string) *models.Admin {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	admin := &models.Admin{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    utils.NormalizeEmail(email),
		Password: hash,
	}
	if err := gdb.Create(admin).Error; err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestPost inserts an announcement directly, bypassing authorization.
func CreateTestPost(t *testing.T, gdb *gorm.DB, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Author:    "Portal Admin",
		Content:   "Details for " + title,
		Timestamp: time.Now().UTC(),
	}
	if err := gdb.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// MakeRequest creates an HTTP test request with an optional JSON body.
func MakeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
}

// Client plays the part of one browser: it replays the cookies the server
// set on earlier responses, so session state survives between requests.
type Client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewClient(t *testing.T, handler http.Handler) *Client {
	return &Client{t: t, handler: handler, cookies: map[string]*http.Cookie{}}
}

func (c *Client) Do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	return c.DoRequest(MakeRequest(method, path, body))
}

// DoRequest sends a prepared request with the client's cookies.
func (c *Client) DoRequest(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return w
}
