package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/errs"
)

var tracer = otel.Tracer("user-repository")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs, attribute.String("db.system", "postgresql"))...),
	)
}

// endSpan records unexpected failures; not-found and validation results are not span errors
func endSpan(span trace.Span, err error) {
	if err != nil && errs.KindOf(err) == errs.KindInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// UserRepositoryWithTracing wraps a UserRepository with tracing
type UserRepositoryWithTracing struct {
	next domain.UserRepository
}

// NewUserRepositoryWithTracing wraps next with tracing spans
func NewUserRepositoryWithTracing(next domain.UserRepository) *UserRepositoryWithTracing {
	return &UserRepositoryWithTracing{next: next}
}

// Create with tracing
func (r *UserRepositoryWithTracing) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := startSpan(ctx, "repository.User.Create", attribute.String("user.username", user.Username))
	defer func() { endSpan(span, err) }()

	if err = r.next.Create(ctx, user); err == nil {
		span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	}
	return err
}

// FindByID with tracing
func (r *UserRepositoryWithTracing) FindByID(ctx context.Context, id uint) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.User.FindByID", attribute.Int("user.id", int(id)))
	defer func() { endSpan(span, err) }()
	return r.next.FindByID(ctx, id)
}

// FindByEmail with tracing
func (r *UserRepositoryWithTracing) FindByEmail(ctx context.Context, email string) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.User.FindByEmail")
	defer func() { endSpan(span, err) }()
	return r.next.FindByEmail(ctx, email)
}

// FindByUsername with tracing
func (r *UserRepositoryWithTracing) FindByUsername(ctx context.Context, username string) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.User.FindByUsername", attribute.String("user.username", username))
	defer func() { endSpan(span, err) }()
	return r.next.FindByUsername(ctx, username)
}

// FindAll with tracing
func (r *UserRepositoryWithTracing) FindAll(ctx context.Context, limit, offset int) (users []domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.User.FindAll",
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)
	defer func() { endSpan(span, err) }()

	users, err = r.next.FindAll(ctx, limit, offset)
	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, err
}

// Count with tracing
func (r *UserRepositoryWithTracing) Count(ctx context.Context) (n int64, err error) {
	ctx, span := startSpan(ctx, "repository.User.Count")
	defer func() { endSpan(span, err) }()
	return r.next.Count(ctx)
}

// Update with tracing
func (r *UserRepositoryWithTracing) Update(ctx context.Context, user *domain.User) (err error) {
	ctx, span := startSpan(ctx, "repository.User.Update", attribute.Int("user.id", int(user.ID)))
	defer func() { endSpan(span, err) }()
	return r.next.Update(ctx, user)
}

// SubscriptionRepositoryWithTracing wraps a SubscriptionRepository with tracing
type SubscriptionRepositoryWithTracing struct {
	next domain.SubscriptionRepository
}

// NewSubscriptionRepositoryWithTracing wraps next with tracing spans
func NewSubscriptionRepositoryWithTracing(next domain.SubscriptionRepository) *SubscriptionRepositoryWithTracing {
	return &SubscriptionRepositoryWithTracing{next: next}
}

func edgeAttrs(userID, authorID uint) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("user.id", int(userID)),
		attribute.Int("author.id", int(authorID)),
	}
}

// Add with tracing
func (r *SubscriptionRepositoryWithTracing) Add(ctx context.Context, userID, authorID uint) (err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.Add", edgeAttrs(userID, authorID)...)
	defer func() { endSpan(span, err) }()
	return r.next.Add(ctx, userID, authorID)
}

// Remove with tracing
func (r *SubscriptionRepositoryWithTracing) Remove(ctx context.Context, userID, authorID uint) (removed bool, err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.Remove", edgeAttrs(userID, authorID)...)
	defer func() { endSpan(span, err) }()
	return r.next.Remove(ctx, userID, authorID)
}

// Exists with tracing
func (r *SubscriptionRepositoryWithTracing) Exists(ctx context.Context, userID, authorID uint) (ok bool, err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.Exists", edgeAttrs(userID, authorID)...)
	defer func() { endSpan(span, err) }()
	return r.next.Exists(ctx, userID, authorID)
}

// SubscribedTo with tracing
func (r *SubscriptionRepositoryWithTracing) SubscribedTo(ctx context.Context, userID uint, authorIDs []uint) (m map[uint]bool, err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.SubscribedTo",
		attribute.Int("user.id", int(userID)),
		attribute.Int("query.authors", len(authorIDs)),
	)
	defer func() { endSpan(span, err) }()
	return r.next.SubscribedTo(ctx, userID, authorIDs)
}

// ListAuthors with tracing
func (r *SubscriptionRepositoryWithTracing) ListAuthors(ctx context.Context, userID uint, limit, offset int) (users []domain.User, err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.ListAuthors",
		attribute.Int("user.id", int(userID)),
		attribute.Int("query.limit", limit),
		attribute.Int("query.offset", offset),
	)
	defer func() { endSpan(span, err) }()
	return r.next.ListAuthors(ctx, userID, limit, offset)
}

// CountAuthors with tracing
func (r *SubscriptionRepositoryWithTracing) CountAuthors(ctx context.Context, userID uint) (n int64, err error) {
	ctx, span := startSpan(ctx, "repository.Subscription.CountAuthors", attribute.Int("user.id", int(userID)))
	defer func() { endSpan(span, err) }()
	return r.next.CountAuthors(ctx, userID)
}
