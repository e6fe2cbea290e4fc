package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/internal/user/usecase/command"
	"github.com/tair/foodgram/internal/user/usecase/query"
	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/httpx"
	"github.com/tair/foodgram/pkg/metrics"
)

// Paging bounds the list endpoints
type Paging struct {
	PageSize    int
	MaxPageSize int
}

// UserHandler handles HTTP requests for users, tokens and subscriptions
type UserHandler struct {
	// Command handlers
	registerHandler    *command.RegisterUserHandler
	loginHandler       *command.LoginUserHandler
	setPasswordHandler *command.SetPasswordHandler
	avatarHandler      *command.SetAvatarHandler
	subscribeHandler   *command.SubscribeHandler

	// Query handlers
	getUserHandler       *query.GetUserHandler
	listHandler          *query.ListUsersHandler
	subscriptionsHandler *query.SubscriptionsHandler

	auth    *httpx.Auth
	metrics *metrics.Metrics
	paging  Paging
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	users domain.UserRepository,
	subs domain.SubscriptionRepository,
	feed domain.RecipeFeed,
	tokens *auth.TokenManager,
	publisher command.EventPublisher,
	m *metrics.Metrics,
	paging Paging,
) *UserHandler {
	return &UserHandler{
		registerHandler:      command.NewRegisterUserHandler(users),
		loginHandler:         command.NewLoginUserHandler(users, tokens),
		setPasswordHandler:   command.NewSetPasswordHandler(users),
		avatarHandler:        command.NewSetAvatarHandler(users),
		subscribeHandler:     command.NewSubscribeHandler(users, subs, publisher),
		getUserHandler:       query.NewGetUserHandler(users, subs),
		listHandler:          query.NewListUsersHandler(users, subs),
		subscriptionsHandler: query.NewSubscriptionsHandler(users, subs, feed),
		auth:                 httpx.NewAuth(tokens),
		metrics:              m,
		paging:               paging,
	}
}

// ListUsers handles GET /users/
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePagination(r, h.paging.PageSize, h.paging.MaxPageSize)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	res, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{
		Viewer: auth.ActorFrom(r.Context()),
		Limit:  p.Limit,
		Offset: p.Offset(),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := p.Within(res.Total); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.NewPage(r, p, res.Total, res.Users))
}

// Register handles POST /users/
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd command.RegisterUserCommand
	if err := httpx.DecodeJSON(r, &cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /users/{id}/
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	profile, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{
		Viewer: auth.ActorFrom(r.Context()),
		ID:     id,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, profile)
}

// Me handles GET /users/me/
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())
	profile, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{Viewer: actor, ID: actor.UserID})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, profile)
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
}

// SetAvatar handles PUT /users/me/avatar/
func (h *UserHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if req.Avatar == "" {
		httpx.RespondError(w, r, errs.ValidationField("avatar", "avatar is required"))
		return
	}

	user, err := h.avatarHandler.Handle(r.Context(), command.SetAvatarCommand{
		Actor:  auth.ActorFrom(r.Context()),
		Avatar: req.Avatar,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, avatarResponse{Avatar: user.Avatar})
}

// DeleteAvatar handles DELETE /users/me/avatar/
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	if _, err := h.avatarHandler.Handle(r.Context(), command.SetAvatarCommand{Actor: auth.ActorFrom(r.Context())}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondNoContent(w)
}

// SetPassword handles POST /users/set_password/
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var cmd command.SetPasswordCommand
	if err := httpx.DecodeJSON(r, &cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	cmd.Actor = auth.ActorFrom(r.Context())

	if err := h.setPasswordHandler.Handle(r.Context(), cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondNoContent(w)
}

// recipesLimit parses the optional recipes_limit query parameter
func recipesLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("recipes_limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.ValidationField("recipes_limit", "recipes_limit must be a non-negative integer")
	}
	return n, nil
}

// Subscriptions handles GET /users/subscriptions/
func (h *UserHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePagination(r, h.paging.PageSize, h.paging.MaxPageSize)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	limit, err := recipesLimit(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	res, err := h.subscriptionsHandler.List(r.Context(), query.ListSubscriptionsQuery{
		Viewer:       auth.ActorFrom(r.Context()),
		Limit:        p.Limit,
		Offset:       p.Offset(),
		RecipesLimit: limit,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	if err := p.Within(res.Total); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, httpx.NewPage(r, p, res.Total, res.Authors))
}

// Subscribe handles POST /users/{id}/subscribe/
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	limit, err := recipesLimit(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	actor := auth.ActorFrom(r.Context())
	if err := h.subscribeHandler.Subscribe(r.Context(), command.SubscriptionCommand{Actor: actor, AuthorID: authorID}); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.metrics.RelationChanged("subscription", "add")

	card, err := h.subscriptionsHandler.Card(r.Context(), query.AuthorCardQuery{
		Viewer:       actor,
		AuthorID:     authorID,
		RecipesLimit: limit,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, card)
}

// Unsubscribe handles DELETE /users/{id}/subscribe/
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	cmd := command.SubscriptionCommand{Actor: auth.ActorFrom(r.Context()), AuthorID: authorID}
	if err := h.subscribeHandler.Unsubscribe(r.Context(), cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	h.metrics.RelationChanged("subscription", "remove")

	httpx.RespondNoContent(w)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/token/login/
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/token/logout/; tokens are stateless so nothing is revoked
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.RespondNoContent(w)
}

func (h *UserHandler) route(router *mux.Router, path, method string, handler http.HandlerFunc) {
	router.HandleFunc(path, httpx.Instrument(h.metrics, path, handler)).Methods(method)
}

// RegisterRoutes registers all user routes on the /api subrouter
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	h.route(router, "/users/", http.MethodPost, h.Register)
	h.route(router, "/auth/token/login/", http.MethodPost, h.Login)

	// Fixed paths go before /users/{id}/
	h.route(router, "/users/", http.MethodGet, h.auth.OptionalAuth(h.ListUsers))
	h.route(router, "/users/me/", http.MethodGet, h.auth.RequireAuth(h.Me))
	h.route(router, "/users/me/avatar/", http.MethodPut, h.auth.RequireAuth(h.SetAvatar))
	h.route(router, "/users/me/avatar/", http.MethodDelete, h.auth.RequireAuth(h.DeleteAvatar))
	h.route(router, "/users/set_password/", http.MethodPost, h.auth.RequireAuth(h.SetPassword))
	h.route(router, "/users/subscriptions/", http.MethodGet, h.auth.RequireAuth(h.Subscriptions))
	h.route(router, "/auth/token/logout/", http.MethodPost, h.auth.RequireAuth(h.Logout))

	h.route(router, "/users/{id:[0-9]+}/", http.MethodGet, h.auth.OptionalAuth(h.GetUser))
	h.route(router, "/users/{id:[0-9]+}/subscribe/", http.MethodPost, h.auth.RequireAuth(h.Subscribe))
	h.route(router, "/users/{id:[0-9]+}/subscribe/", http.MethodDelete, h.auth.RequireAuth(h.Unsubscribe))
}
