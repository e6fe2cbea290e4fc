package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/validation"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// reserved usernames collide with routes under /api/users/
var reservedUsernames = map[string]bool{"me": true, "subscriptions": true, "set_password": true}

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.Registered, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Username = strings.TrimSpace(cmd.Username)

	if err := validation.Struct(&cmd); err != nil {
		return nil, err
	}
	if !usernamePattern.MatchString(cmd.Username) {
		return nil, errs.ValidationField("username", "username may contain only letters, digits and @/./+/-/_")
	}
	if reservedUsernames[strings.ToLower(cmd.Username)] {
		return nil, errs.ValidationField("username", "username %q is reserved", cmd.Username)
	}

	if existing, err := h.repo.FindByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, errs.ValidationField("email", "a user with that email already exists")
	} else if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}
	if existing, err := h.repo.FindByUsername(ctx, cmd.Username); err == nil && existing != nil {
		return nil, errs.ValidationField("username", "a user with that username already exists")
	} else if err != nil && !errs.IsNotFound(err) {
		return nil, err
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, errs.Internal("failed to hash password", err)
	}

	user := &domain.User{
		Email:     cmd.Email,
		Username:  cmd.Username,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Password:  hashed,
		Role:      domain.RoleUser,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &domain.Registered{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
