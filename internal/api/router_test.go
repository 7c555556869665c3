package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bugtrack-backend/internal/api"
	"bugtrack-backend/internal/auth"
	"bugtrack-backend/internal/database"
	"bugtrack-backend/internal/models"
	"bugtrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*chi.Mux, *auth.Authenticator) {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	authenticator := auth.New(testSecret)
	router := api.NewRouter(
		authenticator,
		services.NewBugService(db),
		services.NewPostService(db),
		services.NewUserService(db),
		"http://localhost:3000",
	)
	return router, authenticator
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestBugLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// Submit
	rec := doJSON(t, router, http.MethodPost, "/api/bugs", "", map[string]string{
		"title": "Crash on save",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var bug models.Bug
	decode(t, rec, &bug)
	assert.NotEmpty(t, bug.ID)
	assert.Equal(t, "open", bug.Status)
	assert.False(t, bug.CreatedAt.IsZero())

	// Listed
	rec = doJSON(t, router, http.MethodGet, "/api/bugs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bugs []models.Bug
	decode(t, rec, &bugs)
	require.Len(t, bugs, 1)
	assert.Equal(t, bug.ID, bugs[0].ID)

	// Resolve
	rec = doJSON(t, router, http.MethodPut, "/api/bugs/"+bug.ID, "", map[string]string{
		"status": "resolved",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Bug
	decode(t, rec, &updated)
	assert.Equal(t, "resolved", updated.Status)

	// Remove
	rec = doJSON(t, router, http.MethodDelete, "/api/bugs/"+bug.ID, "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bugs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bugs = nil
	decode(t, rec, &bugs)
	assert.Empty(t, bugs)
}

func TestBugValidationAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/bugs", "", map[string]string{
		"description": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/bugs/no-such-id", "", map[string]string{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/bugs/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostCreateRequiresAuth(t *testing.T) {
	router, authenticator := newTestRouter(t)

	body := map[string]string{"title": "Hello World", "content": "first post"}

	rec := doJSON(t, router, http.MethodPost, "/api/posts", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := authenticator.GenerateToken(models.User{ID: "user-a", Email: "a@example.com"})
	require.NoError(t, err)

	rec = doJSON(t, router, http.MethodPost, "/api/posts", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decode(t, rec, &post)
	assert.Equal(t, "user-a", post.Author)
	assert.Equal(t, "hello-world", post.Slug)
}

func TestPostOwnership(t *testing.T) {
	router, authenticator := newTestRouter(t)

	tokenA, err := authenticator.GenerateToken(models.User{ID: "user-a", Email: "a@example.com"})
	require.NoError(t, err)
	tokenB, err := authenticator.GenerateToken(models.User{ID: "user-b", Email: "b@example.com"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/posts", tokenA, map[string]string{
		"title": "Owned Post", "content": "mine",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decode(t, rec, &post)

	// Another user may neither update nor delete it.
	rec = doJSON(t, router, http.MethodPut, "/api/posts/"+post.ID, tokenB, map[string]string{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/posts/"+post.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner may.
	rec = doJSON(t, router, http.MethodPut, "/api/posts/"+post.ID, tokenA, map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Post
	decode(t, rec, &updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "owned-post", updated.Slug)

	rec = doJSON(t, router, http.MethodDelete, "/api/posts/"+post.ID, tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg map[string]string
	decode(t, rec, &msg)
	assert.Equal(t, "Deleted", msg["message"])

	rec = doJSON(t, router, http.MethodGet, "/api/posts/"+post.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostListingPagination(t *testing.T) {
	router, authenticator := newTestRouter(t)
	token, err := authenticator.GenerateToken(models.User{ID: "user-a", Email: "a@example.com"})
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/posts", token, map[string]string{
			"title": fmt.Sprintf("Post %d", i), "content": "c", "category": "news",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/posts?category=news&page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []models.Post
	decode(t, rec, &posts)
	assert.Len(t, posts, 3)

	rec = doJSON(t, router, http.MethodGet, "/api/posts?category=nothing", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts = nil
	decode(t, rec, &posts)
	assert.Empty(t, posts)
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "tester", "email": "tester@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var user models.User
	decode(t, rec, &user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "tester", user.Username)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "tester@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "tester@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// The issued token authorizes post creation.
	rec = doJSON(t, router, http.MethodPost, "/api/posts", resp.Token, map[string]string{
		"title": "First Post", "content": "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decode(t, rec, &post)
	assert.Equal(t, user.ID, post.Author)
}
