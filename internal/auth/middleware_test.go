package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/config"
	"libraryapi/internal/entities"
)

type stubUserStore struct {
	users map[uint]*entities.User
}

func (s *stubUserStore) Get(id uint) (*entities.User, error) {
	return s.users[id], nil
}

func setupTestRouter(t *testing.T, store *stubUserStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_auth_" + t.Name() + ".db"
	sqlDB, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
		os.Remove(dbPath)
	})

	cfg := config.Auth{
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      4,
		SecureCookies:   false, // For testing
	}

	sm, err := NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)

	middleware := NewMiddleware(store, sm)

	router := gin.New()
	router.Use(sm.SessionLoadSave())

	// Test-only login route establishing a session for a known user
	router.GET("/login/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		require.NoError(t, err)
		user, ok := store.users[uint(id)]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such user"})
			return
		}
		require.NoError(t, sm.CreateSession(c.Request, user))
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	router.GET("/active", middleware.RequireActiveUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})
	router.GET("/admin", middleware.RequireAdminUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})

	return router
}

func loginAs(t *testing.T, router *gin.Engine, id uint) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/login/"+strconv.FormatUint(uint64(id), 10), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func doRequest(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_NoSessionIsUnauthorized(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{}}
	router := setupTestRouter(t, store)

	w := doRequest(router, "/active", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_ActiveUserAllowed(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{
		1: {ID: 1, Email: "user@example.com", IsActive: true},
	}}
	router := setupTestRouter(t, store)

	cookies := loginAs(t, router, 1)
	w := doRequest(router, "/active", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_InactiveUserRejected(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{
		1: {ID: 1, Email: "user@example.com", IsActive: false},
	}}
	router := setupTestRouter(t, store)

	cookies := loginAs(t, router, 1)
	w := doRequest(router, "/active", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_NonAdminForbidden(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{
		1: {ID: 1, Email: "user@example.com", IsActive: true, IsAdmin: false},
	}}
	router := setupTestRouter(t, store)

	cookies := loginAs(t, router, 1)
	w := doRequest(router, "/admin", cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddleware_AdminAllowed(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{
		1: {ID: 1, Email: "admin@example.com", IsActive: true, IsAdmin: true},
	}}
	router := setupTestRouter(t, store)

	cookies := loginAs(t, router, 1)
	w := doRequest(router, "/admin", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_DeletedUserRejected(t *testing.T) {
	store := &stubUserStore{users: map[uint]*entities.User{
		1: {ID: 1, Email: "user@example.com", IsActive: true},
	}}
	router := setupTestRouter(t, store)

	cookies := loginAs(t, router, 1)

	// Simulate the user being deleted while the session is still live
	delete(store.users, 1)

	w := doRequest(router, "/active", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
