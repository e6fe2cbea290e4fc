package command

import (
	"context"
	"testing"
	"time"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/kafka"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
)

type memUsers struct {
	byID   map[uint]*domain.User
	nextID uint
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint]*domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errs.NotFound("user not found")
}

func (m *memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range m.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.NotFound("user not found")
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == username })
}

func (m *memUsers) FindAll(context.Context, int, int) ([]domain.User, error) { return nil, nil }

func (m *memUsers) Count(context.Context) (int64, error) { return int64(len(m.byID)), nil }

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

type memSubs struct{ edges map[[2]uint]bool }

func newMemSubs() *memSubs { return &memSubs{edges: map[[2]uint]bool{}} }

func (m *memSubs) Add(_ context.Context, userID, authorID uint) error {
	m.edges[[2]uint{userID, authorID}] = true
	return nil
}

func (m *memSubs) Remove(_ context.Context, userID, authorID uint) (bool, error) {
	key := [2]uint{userID, authorID}
	existed := m.edges[key]
	delete(m.edges, key)
	return existed, nil
}

func (m *memSubs) Exists(_ context.Context, userID, authorID uint) (bool, error) {
	return m.edges[[2]uint{userID, authorID}], nil
}

func (m *memSubs) SubscribedTo(context.Context, uint, []uint) (map[uint]bool, error) {
	return nil, nil
}

func (m *memSubs) ListAuthors(context.Context, uint, int, int) ([]domain.User, error) {
	return nil, nil
}

func (m *memSubs) CountAuthors(context.Context, uint) (int64, error) { return 0, nil }

type recordingPublisher struct{ events []kafka.Event }

func (p *recordingPublisher) Publish(_ context.Context, e kafka.Event) {
	p.events = append(p.events, e)
}

func validRegistration() RegisterUserCommand {
	return RegisterUserCommand{
		Email:     "Cook@Example.com",
		Username:  "cook",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "bon-appetit",
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	h := NewRegisterUserHandler(repo)

	got, err := h.Handle(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got.ID == 0 || got.Email != "cook@example.com" {
		t.Errorf("unexpected result %+v", got)
	}
	stored, _ := repo.FindByID(ctx, got.ID)
	if stored.Password == "bon-appetit" || !auth.CheckPassword(stored.Password, "bon-appetit") {
		t.Error("password should be stored hashed")
	}
	if stored.Role != domain.RoleUser {
		t.Errorf("Role = %q", stored.Role)
	}

	tests := []struct {
		name   string
		mutate func(c *RegisterUserCommand)
		field  string
	}{
		{"duplicate email", func(c *RegisterUserCommand) { c.Username = "other" }, "email"},
		{"duplicate username", func(c *RegisterUserCommand) { c.Email = "other@example.com" }, "username"},
		{"bad email", func(c *RegisterUserCommand) { c.Email = "nope" }, "email"},
		{"bad username", func(c *RegisterUserCommand) { c.Email, c.Username = "x@example.com", "has space" }, "username"},
		{"reserved username", func(c *RegisterUserCommand) { c.Email, c.Username = "x@example.com", "me" }, "username"},
		{"short password", func(c *RegisterUserCommand) { c.Email, c.Username, c.Password = "x@example.com", "x", "short" }, "password"},
		{"missing last name", func(c *RegisterUserCommand) { c.Email, c.Username, c.LastName = "x@example.com", "x", "" }, "last_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validRegistration()
			tt.mutate(&cmd)
			_, err := h.Handle(ctx, cmd)
			if !errs.IsValidation(err) {
				t.Fatalf("error = %v, want validation", err)
			}
			if errs.FieldOf(err) != tt.field {
				t.Errorf("field = %q, want %q", errs.FieldOf(err), tt.field)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	if _, err := NewRegisterUserHandler(repo).Handle(ctx, validRegistration()); err != nil {
		t.Fatal(err)
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := NewLoginUserHandler(repo, tokens)

	resp, err := h.Handle(ctx, LoginUserCommand{Email: "COOK@example.com", Password: "bon-appetit"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	claims, err := tokens.ValidateToken(resp.AuthToken)
	if err != nil || claims.Email != "cook@example.com" {
		t.Errorf("issued token invalid: %v %+v", err, claims)
	}

	for _, cmd := range []LoginUserCommand{
		{Email: "cook@example.com", Password: "wrong-password"},
		{Email: "ghost@example.com", Password: "bon-appetit"},
		{Email: "", Password: ""},
	} {
		if _, err := h.Handle(ctx, cmd); !errs.IsValidation(err) {
			t.Errorf("Handle(%+v) error = %v, want validation", cmd, err)
		}
	}
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	reg, _ := NewRegisterUserHandler(repo).Handle(ctx, validRegistration())
	actor := auth.Actor{UserID: reg.ID}
	h := NewSetPasswordHandler(repo)

	err := h.Handle(ctx, SetPasswordCommand{Actor: actor, CurrentPassword: "wrong", NewPassword: "new-password"})
	if errs.FieldOf(err) != "current_password" {
		t.Errorf("wrong current password error = %v", err)
	}
	if err := h.Handle(ctx, SetPasswordCommand{Actor: actor, CurrentPassword: "bon-appetit", NewPassword: "new-password"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	stored, _ := repo.FindByID(ctx, reg.ID)
	if !auth.CheckPassword(stored.Password, "new-password") {
		t.Error("new password not stored")
	}
	if err := h.Handle(ctx, SetPasswordCommand{CurrentPassword: "a", NewPassword: "bbbbbbbb"}); !errs.IsUnauthorized(err) {
		t.Errorf("anonymous error = %v", err)
	}
}

func TestSetAvatar(t *testing.T) {
	ctx := context.Background()
	repo := newMemUsers()
	reg, _ := NewRegisterUserHandler(repo).Handle(ctx, validRegistration())
	h := NewSetAvatarHandler(repo)

	u, err := h.Handle(ctx, SetAvatarCommand{Actor: auth.Actor{UserID: reg.ID}, Avatar: " data:image/png;base64,AAA "})
	if err != nil || u.Avatar != "data:image/png;base64,AAA" {
		t.Fatalf("Handle() = %+v, %v", u, err)
	}
	u, err = h.Handle(ctx, SetAvatarCommand{Actor: auth.Actor{UserID: reg.ID}})
	if err != nil || u.Avatar != "" {
		t.Errorf("clearing avatar = %+v, %v", u, err)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	subs := newMemSubs()
	pub := &recordingPublisher{}
	h := NewSubscribeHandler(users, subs, pub)

	alice := &domain.User{Username: "alice", Email: "a@x.io"}
	bob := &domain.User{Username: "bob", Email: "b@x.io"}
	users.Create(ctx, alice)
	users.Create(ctx, bob)
	actor := auth.Actor{UserID: alice.ID}

	if err := h.Subscribe(ctx, SubscriptionCommand{Actor: actor, AuthorID: bob.ID}); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !subs.edges[[2]uint{alice.ID, bob.ID}] {
		t.Error("edge not stored")
	}

	tests := []struct {
		name  string
		cmd   SubscriptionCommand
		check func(error) bool
	}{
		{"duplicate", SubscriptionCommand{Actor: actor, AuthorID: bob.ID}, errs.IsValidation},
		{"self", SubscriptionCommand{Actor: actor, AuthorID: alice.ID}, errs.IsValidation},
		{"missing author", SubscriptionCommand{Actor: actor, AuthorID: 99}, errs.IsNotFound},
		{"anonymous", SubscriptionCommand{AuthorID: bob.ID}, errs.IsUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := h.Subscribe(ctx, tt.cmd); !tt.check(err) {
				t.Errorf("Subscribe() error = %v", err)
			}
		})
	}

	if len(pub.events) != 1 || pub.events[0].EventType != kafka.EventTypeSubscriptionAdded || pub.events[0].AuthorID != bob.ID {
		t.Errorf("published events = %+v", pub.events)
	}
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	subs := newMemSubs()
	pub := &recordingPublisher{}
	h := NewSubscribeHandler(users, subs, pub)

	alice := &domain.User{Username: "alice", Email: "a@x.io"}
	bob := &domain.User{Username: "bob", Email: "b@x.io"}
	users.Create(ctx, alice)
	users.Create(ctx, bob)
	actor := auth.Actor{UserID: alice.ID}
	subs.Add(ctx, alice.ID, bob.ID)

	if err := h.Unsubscribe(ctx, SubscriptionCommand{Actor: actor, AuthorID: bob.ID}); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}
	if err := h.Unsubscribe(ctx, SubscriptionCommand{Actor: actor, AuthorID: bob.ID}); err != nil {
		t.Errorf("second Unsubscribe() error = %v, want idempotent success", err)
	}
	if err := h.Unsubscribe(ctx, SubscriptionCommand{Actor: actor, AuthorID: alice.ID}); !errs.IsValidation(err) {
		t.Errorf("self Unsubscribe() error = %v", err)
	}
	if err := h.Unsubscribe(ctx, SubscriptionCommand{Actor: actor, AuthorID: 42}); !errs.IsNotFound(err) {
		t.Errorf("missing author Unsubscribe() error = %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].EventType != kafka.EventTypeSubscriptionRemoved {
		t.Errorf("published events = %+v", pub.events)
	}
}
