package controllers

import (
	"net/http"
	"testing"

	"github.com/casegen/casegen/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	e := newServer()
	token := register(t, e, "auth@example.com")

	rec := request(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Dup", "lastName": "User", "email": "AUTH@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "auth@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "auth@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := sessionResponse{}
	decode(t, rec, &login)
	assert.Equal(t, "auth@example.com", login.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	// logging in again replaced the registration session
	rec = request(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	token = login.Token

	rec = request(t, e, http.MethodPut, "/api/auth/profile", token, map[string]string{"firstName": "Ada", "lastName": "Lovelace"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = request(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := models.User{}
	decode(t, rec, &user)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)

	rec = request(t, e, http.MethodDelete, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = request(t, e, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckLogin(t *testing.T) {
	e := newServer()

	rec := request(t, e, http.MethodGet, "/api/test-cases", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, e, http.MethodGet, "/api/test-cases", "1_forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)

	rec = request(t, e, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, e, http.MethodGet, "/api/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = request(t, e, http.MethodGet, "/nothing/here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = request(t, e, http.MethodPatch, "/api/test-cases", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	rec = request(t, e, http.MethodPut, "/api/test-cases/some-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
