package command

import (
	"errors"
	"fmt"

	"github.com/sd-store/catalog-service/internal/user/domain"
	"github.com/sd-store/catalog-service/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Email    string
	Password string
	Role     string // optional, defaults to "user"
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidData)
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidData)
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidData)
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidData, role)
	}

	if existing, err := h.repo.FindByUsername(cmd.Username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}
	if existing, err := h.repo.FindByEmail(cmd.Email); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: cmd.Username,
		Email:    cmd.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
