package command

import (
	"context"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/validation"
)

// SetPasswordCommand changes the actor's password
type SetPasswordCommand struct {
	Actor           auth.Actor `json:"-"`
	CurrentPassword string     `json:"current_password" validate:"required"`
	NewPassword     string     `json:"new_password" validate:"required,min=8,max=128"`
}

type SetPasswordHandler struct {
	repo domain.UserRepository
}

func NewSetPasswordHandler(repo domain.UserRepository) *SetPasswordHandler {
	return &SetPasswordHandler{repo: repo}
}

func (h *SetPasswordHandler) Handle(ctx context.Context, cmd SetPasswordCommand) error {
	if !cmd.Actor.Authenticated() {
		return errs.Unauthorized("authentication credentials were not provided")
	}
	if err := validation.Struct(&cmd); err != nil {
		return err
	}

	user, err := h.repo.FindByID(ctx, cmd.Actor.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, cmd.CurrentPassword) {
		return errs.ValidationField("current_password", "invalid password")
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return errs.Internal("failed to hash password", err)
	}
	user.Password = hashed
	return h.repo.Update(ctx, user)
}
