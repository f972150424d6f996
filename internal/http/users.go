package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/auth"
	"libraryapi/internal/services"
)

type UsersController struct {
	users *services.UserService
}

func NewUsersController(users *services.UserService) *UsersController {
	return &UsersController{users: users}
}

// List returns a pagination window over all users.
func (controller *UsersController) List(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	users, err := controller.users.GetMulti(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create inserts a new user. Duplicate emails are client errors.
func (controller *UsersController) Create(c *gin.Context) {
	var input services.UserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := controller.users.Create(input)
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated caller.
func (controller *UsersController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// UpdateMe applies a partial update to the caller's own record.
// is_active and is_admin are ignored here: only the admin route may
// change privileges, so a caller cannot escalate their own account.
func (controller *UsersController) UpdateMe(c *gin.Context) {
	caller := auth.CurrentUser(c)

	var input services.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	input.IsActive = nil
	input.IsAdmin = nil

	updated, err := controller.users.Update(caller, input)
	if err != nil {
		respondServiceError(c, err, "update current user")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetByID returns one user or 404.
func (controller *UsersController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.users.Get(id)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update applies a partial update to an existing user.
func (controller *UsersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.users.Get(id)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}

	var input services.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := controller.users.Update(user, input)
	if err != nil {
		respondServiceError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a user. Callers may never delete their own account,
// regardless of admin status.
func (controller *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.users.Get(id)
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}

	caller := auth.CurrentUser(c)
	if caller != nil && caller.ID == user.ID {
		respondBadRequest(c, "cannot delete the currently authenticated user")
		return
	}

	deleted, err := controller.users.Remove(id)
	if err != nil {
		respondInternalError(c, err, "delete user")
		return
	}
	if deleted == nil {
		respondNotFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// GetByEmail returns the single user with this email or 404.
func (controller *UsersController) GetByEmail(c *gin.Context) {
	user, err := controller.users.GetByEmail(c.Param("email"))
	if err != nil {
		respondInternalError(c, err, "get user by email")
		return
	}
	if user == nil {
		respondNotFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}
