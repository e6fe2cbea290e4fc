package command

import (
	"context"
	"strings"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// LoginUserCommand represents the command to obtain a token
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse is the issued token
type LoginResponse struct {
	AuthToken string `json:"auth_token"`
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(userID uint, email, role string) (string, error)
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens TokenIssuer
}

func NewLoginUserHandler(repo domain.UserRepository, tokens TokenIssuer) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle checks the credentials and issues a token
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errs.Validation("email and password are required")
	}

	user, err := h.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validation("unable to log in with provided credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, errs.Validation("unable to log in with provided credentials")
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errs.Internal("failed to generate token", err)
	}
	return &LoginResponse{AuthToken: token}, nil
}
