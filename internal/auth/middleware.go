package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/entities"
)

// ContextKeyUser is the Gin context key holding the resolved caller.
const ContextKeyUser = "auth_user"

// UserStore resolves users from stored state. Satisfied by
// services.UserService.
type UserStore interface {
	Get(id uint) (*entities.User, error)
}

// Middleware gates routes on the caller's identity and privileges.
type Middleware struct {
	users    UserStore
	sessions *SessionManager
}

// NewMiddleware creates the authorization middleware.
func NewMiddleware(users UserStore, sessions *SessionManager) *Middleware {
	return &Middleware{users: users, sessions: sessions}
}

// RequireActiveUser aborts with 401 unless the request carries a valid
// session for an active user. The user is stored in the context for
// handlers via CurrentUser.
func (m *Middleware) RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := m.resolveUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "inactive user",
			})
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdminUser aborts with 401 for unauthenticated or inactive
// callers and with 403 for authenticated non-admins.
func (m *Middleware) RequireAdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := m.resolveUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "inactive user",
			})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// resolveUser returns the caller, reading the session at most once per
// request. The user is re-read from storage so that is_active and
// is_admin changes take effect on the next request.
func (m *Middleware) resolveUser(c *gin.Context) *entities.User {
	if user := CurrentUser(c); user != nil {
		return user
	}

	userID := m.sessions.GetUserID(c.Request)
	if userID == 0 {
		return nil
	}

	user, err := m.users.Get(userID)
	if err != nil || user == nil {
		return nil
	}
	c.Set(ContextKeyUser, user)
	return user
}

// CurrentUser retrieves the authenticated caller from the Gin context.
// Returns nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}
