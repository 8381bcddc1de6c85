package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"campushub/internal/testutil"
)

type sessionBody struct {
	User *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	IsSuperAdmin  bool   `json:"is_super_admin"`
	CommenterName string `json:"commenter_name"`
	ClientID      string `json:"client_id"`
}

func TestLogin(t *testing.T) {
	e := setup(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"valid", map[string]string{"email": testutil.SuperAdminEmail, "password": testutil.SuperAdminPassword}, http.StatusOK},
		{"wrong password", map[string]string{"email": testutil.SuperAdminEmail, "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "who@campus.edu", "password": "nope"}, http.StatusUnauthorized},
		{"missing fields", map[string]string{"email": testutil.SuperAdminEmail}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.client(t).Do(http.MethodPost, "/api/login", tt.body)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	e := setup(t)
	c := e.client(t)

	var anon sessionBody
	w := c.Do(http.MethodGet, "/api/session", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &anon)
	assert.Nil(t, anon.User)
	assert.NotEmpty(t, anon.ClientID)

	w = c.Do(http.MethodPost, "/api/login", map[string]string{
		"email": testutil.SuperAdminEmail, "password": testutil.SuperAdminPassword,
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var signedIn sessionBody
	testutil.AssertJSON(t, c.Do(http.MethodGet, "/api/session", nil), &signedIn)
	if assert.NotNil(t, signedIn.User) {
		assert.Equal(t, "Portal Admin", signedIn.User.Name)
	}
	assert.True(t, signedIn.IsSuperAdmin)
	assert.Equal(t, anon.ClientID, signedIn.ClientID)

	testutil.AssertStatus(t, c.Do(http.MethodPost, "/api/logout", nil), http.StatusOK)

	var loggedOut sessionBody
	testutil.AssertJSON(t, c.Do(http.MethodGet, "/api/session", nil), &loggedOut)
	assert.Nil(t, loggedOut.User)
	assert.Equal(t, anon.ClientID, loggedOut.ClientID)
}

func TestAdminManagement(t *testing.T) {
	e := setup(t)
	super := e.superAdmin(t)
	mod := e.moderator(t)

	newAdmin := map[string]string{"name": "Kim", "email": "kim@campus.edu", "password": "kim-pass"}

	testutil.AssertStatus(t, e.client(t).Do(http.MethodPost, "/api/admins", newAdmin), http.StatusUnauthorized)
	testutil.AssertStatus(t, mod.Do(http.MethodPost, "/api/admins", newAdmin), http.StatusForbidden)
	testutil.AssertStatus(t, super.Do(http.MethodPost, "/api/admins", newAdmin), http.StatusCreated)
	testutil.AssertStatus(t, super.Do(http.MethodPost, "/api/admins", newAdmin), http.StatusConflict)

	var admins []map[string]any
	w := mod.Do(http.MethodGet, "/api/admins", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &admins)
	assert.Len(t, admins, 3)
	for _, a := range admins {
		assert.NotContains(t, a, "password")
	}

	testutil.AssertStatus(t, super.Do(http.MethodDelete, "/api/admins/"+testutil.SuperAdminEmail, nil), http.StatusBadRequest)
	testutil.AssertStatus(t, super.Do(http.MethodDelete, "/api/admins/kim@campus.edu", nil), http.StatusOK)
	testutil.AssertStatus(t, super.Do(http.MethodDelete, "/api/admins/kim@campus.edu", nil), http.StatusNotFound)
}

func TestAdminUpdates(t *testing.T) {
	e := setup(t)
	super := e.superAdmin(t)
	mod := e.moderator(t)

	body := map[string]string{"content": "Budget meeting moved to Thursday"}
	testutil.AssertStatus(t, mod.Do(http.MethodPost, "/api/admin-updates", body), http.StatusForbidden)
	testutil.AssertStatus(t, super.Do(http.MethodPost, "/api/admin-updates", body), http.StatusCreated)

	var updates []struct {
		ID      string `json:"id"`
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	w := mod.Do(http.MethodGet, "/api/admin-updates", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &updates)
	if assert.Len(t, updates, 1) {
		assert.Equal(t, "Portal Admin", updates[0].Author)
	}

	testutil.AssertStatus(t, e.client(t).Do(http.MethodGet, "/api/admin-updates", nil), http.StatusUnauthorized)
}
