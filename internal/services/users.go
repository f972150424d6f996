package services

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"libraryapi/internal/auth"
	"libraryapi/internal/entities"
	"libraryapi/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserCreate is the input for creating a user. The plaintext password is
// hashed immediately and never persisted.
type UserCreate struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	IsActive *bool  `json:"is_active"`
	IsAdmin  *bool  `json:"is_admin"`
}

// UserUpdate carries a partial update: nil fields are left untouched.
// A present Password is hashed before storage.
type UserUpdate struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

// UserService adds email uniqueness, password hashing and
// authentication on top of the user repository.
type UserService struct {
	repo       *repository.Repository[entities.User]
	bcryptCost int
}

func NewUserService(repo *repository.Repository[entities.User], bcryptCost int) *UserService {
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// Get retrieves a user by ID, nil when absent.
func (s *UserService) Get(id uint) (*entities.User, error) {
	return s.repo.Get(id)
}

// GetMulti returns a pagination window over all users.
func (s *UserService) GetMulti(skip, limit int) ([]entities.User, error) {
	return s.repo.GetMulti(skip, limit)
}

// Count returns the total number of users.
func (s *UserService) Count() (int64, error) {
	return s.repo.Count()
}

// Create validates email uniqueness, hashes the password and inserts
// the user. is_active defaults to true and is_admin to false unless
// explicitly overridden.
func (s *UserService) Create(input UserCreate) (*entities.User, error) {
	// Validate email format and length (RFC 5321 limit is 254)
	if len(input.Email) > 254 || !emailPattern.MatchString(input.Email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	existing, err := s.repo.FirstBy("email", input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a user with email %q already exists", ErrDuplicateKey, input.Email)
	}

	hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:          input.Email,
		HashedPassword: hashed,
		FullName:       input.FullName,
		IsActive:       true,
		IsAdmin:        false,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a user with email %q already exists", ErrDuplicateKey, input.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update applies a partial update. A present password is hashed into
// hashed_password; a changed email is re-validated for uniqueness.
func (s *UserService) Update(existing *entities.User, input UserUpdate) (*entities.User, error) {
	changes := map[string]any{}
	if input.Email != nil {
		if *input.Email != existing.Email {
			if len(*input.Email) > 254 || !emailPattern.MatchString(*input.Email) {
				return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
			}
			other, err := s.repo.FirstBy("email", *input.Email)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing email: %w", err)
			}
			if other != nil {
				return nil, fmt.Errorf("%w: a user with email %q already exists", ErrDuplicateKey, *input.Email)
			}
		}
		changes["email"] = *input.Email
	}
	if input.Password != nil {
		hashed, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, fmt.Errorf("%w: %s", ErrValidation, err)
			}
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["hashed_password"] = hashed
	}
	if input.FullName != nil {
		changes["full_name"] = *input.FullName
	}
	if input.IsActive != nil {
		changes["is_active"] = *input.IsActive
	}
	if input.IsAdmin != nil {
		changes["is_admin"] = *input.IsAdmin
	}

	updated, err := s.repo.Update(existing, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: a user with that email already exists", ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// Remove deletes a user, returning it as it existed before deletion.
// Returns nil when absent. Self-delete prevention is an authorization
// boundary concern, not enforced here.
func (s *UserService) Remove(id uint) (*entities.User, error) {
	return s.repo.Delete(id)
}

// GetByEmail returns at most one user or nil.
func (s *UserService) GetByEmail(email string) (*entities.User, error) {
	return s.repo.FirstBy("email", email)
}

// Authenticate verifies credentials and returns the user, or nil for
// both an unknown email and a wrong password so callers cannot tell
// the two apart.
func (s *UserService) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.repo.FirstBy("email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	if err := auth.CheckPassword(password, user.HashedPassword); err != nil {
		return nil, nil
	}
	return user, nil
}

// VerifyPassword reports whether plain matches the stored digest.
func (s *UserService) VerifyPassword(plain, digest string) bool {
	return auth.CheckPassword(plain, digest) == nil
}

// IsActive reports whether the user may authenticate and act.
func (s *UserService) IsActive(user *entities.User) bool {
	return user.IsActive
}

// IsAdmin reports whether the user may perform elevated operations.
func (s *UserService) IsAdmin(user *entities.User) bool {
	return user.IsAdmin
}
