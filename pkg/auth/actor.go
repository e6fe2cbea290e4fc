package auth

import "context"

const RoleAdmin = "admin"

// Actor is the authenticated caller of an operation; the zero value is anonymous
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) Authenticated() bool { return a.UserID != 0 }

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanModify reports whether the actor may change a resource owned by ownerID
func (a Actor) CanModify(ownerID uint) bool {
	return a.Authenticated() && (a.UserID == ownerID || a.IsAdmin())
}

type actorKey struct{}

// WithActor stores the actor in ctx
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx, or the anonymous actor
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}

// ActorFromClaims converts validated token claims into an actor
func ActorFromClaims(c *Claims) Actor {
	return Actor{UserID: c.UserID, Role: c.Role}
}
