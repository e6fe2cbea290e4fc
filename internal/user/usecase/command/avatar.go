package command

import (
	"context"
	"strings"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// SetAvatarCommand stores an avatar reference (a URL or data URI) for the actor
type SetAvatarCommand struct {
	Actor  auth.Actor
	Avatar string
}

type SetAvatarHandler struct {
	repo domain.UserRepository
}

func NewSetAvatarHandler(repo domain.UserRepository) *SetAvatarHandler {
	return &SetAvatarHandler{repo: repo}
}

// Handle sets the avatar; an empty avatar clears it
func (h *SetAvatarHandler) Handle(ctx context.Context, cmd SetAvatarCommand) (*domain.User, error) {
	if !cmd.Actor.Authenticated() {
		return nil, errs.Unauthorized("authentication credentials were not provided")
	}

	user, err := h.repo.FindByID(ctx, cmd.Actor.UserID)
	if err != nil {
		return nil, err
	}
	user.Avatar = strings.TrimSpace(cmd.Avatar)
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
