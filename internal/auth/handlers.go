package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/entities"
)

// Authenticator verifies credentials. Satisfied by services.UserService.
type Authenticator interface {
	Authenticate(email, password string) (*entities.User, error)
}

// Controller handles the login/logout endpoints.
type Controller struct {
	users    Authenticator
	sessions *SessionManager
	limiter  *RateLimiter
}

// NewController creates the authentication controller. A nil limiter
// disables login throttling.
func NewController(users Authenticator, sessions *SessionManager, limiter *RateLimiter) *Controller {
	return &Controller{users: users, sessions: sessions, limiter: limiter}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and establishes a session. The response is
// identical for an unknown email and a wrong password.
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if ctrl.limiter != nil {
		if allowed, retryAfter := ctrl.limiter.Allow(c.ClientIP(), req.Email); !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many login attempts",
				"retry_after": retryAfter.String(),
			})
			return
		}
	}

	user, err := ctrl.users.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		if ctrl.limiter != nil {
			ctrl.limiter.RecordFailure(c.ClientIP(), req.Email)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}
	if ctrl.limiter != nil {
		ctrl.limiter.RecordSuccess(c.ClientIP(), req.Email)
	}
	if !user.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inactive user"})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout destroys the caller's session. Safe to call unauthenticated.
func (ctrl *Controller) Logout(c *gin.Context) {
	if err := ctrl.sessions.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
