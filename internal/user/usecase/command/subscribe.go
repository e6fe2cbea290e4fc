package command

import (
	"context"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

// SubscriptionCommand targets the edge actor -> author
type SubscriptionCommand struct {
	Actor    auth.Actor
	AuthorID uint
}

// SubscribeHandler handles follow and unfollow commands
type SubscribeHandler struct {
	users     domain.UserRepository
	subs      domain.SubscriptionRepository
	publisher EventPublisher
}

func NewSubscribeHandler(users domain.UserRepository, subs domain.SubscriptionRepository, publisher EventPublisher) *SubscribeHandler {
	return &SubscribeHandler{users: users, subs: subs, publisher: publisher}
}

func (h *SubscribeHandler) check(ctx context.Context, cmd SubscriptionCommand) error {
	if !cmd.Actor.Authenticated() {
		return errs.Unauthorized("authentication credentials were not provided")
	}
	if _, err := h.users.FindByID(ctx, cmd.AuthorID); err != nil {
		return err
	}
	if cmd.AuthorID == cmd.Actor.UserID {
		return errs.Validation("cannot subscribe to yourself")
	}
	return nil
}

// Subscribe adds the edge; an existing edge is a validation error
func (h *SubscribeHandler) Subscribe(ctx context.Context, cmd SubscriptionCommand) error {
	if err := h.check(ctx, cmd); err != nil {
		return err
	}

	exists, err := h.subs.Exists(ctx, cmd.Actor.UserID, cmd.AuthorID)
	if err != nil {
		return err
	}
	if exists {
		return errs.Validation("already subscribed to this author")
	}
	if err := h.subs.Add(ctx, cmd.Actor.UserID, cmd.AuthorID); err != nil {
		return err
	}

	h.publisher.Publish(ctx, kafka.Event{
		EventType: kafka.EventTypeSubscriptionAdded,
		UserID:    cmd.Actor.UserID,
		AuthorID:  cmd.AuthorID,
	})
	return nil
}

// Unsubscribe removes the edge; removing a missing edge succeeds
func (h *SubscribeHandler) Unsubscribe(ctx context.Context, cmd SubscriptionCommand) error {
	if err := h.check(ctx, cmd); err != nil {
		return err
	}

	removed, err := h.subs.Remove(ctx, cmd.Actor.UserID, cmd.AuthorID)
	if err != nil {
		return err
	}
	if removed {
		h.publisher.Publish(ctx, kafka.Event{
			EventType: kafka.EventTypeSubscriptionRemoved,
			UserID:    cmd.Actor.UserID,
			AuthorID:  cmd.AuthorID,
		})
	}
	return nil
}
