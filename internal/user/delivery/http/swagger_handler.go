package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body command.RegisterUserCommand true "Sign-up data"
// @Success 201 {object} domain.Registered
// @Failure 400 {object} httpx.ErrorResponse
// @Router /users/ [post]
func (h *UserHandler) RegisterDoc() {}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} object{count=int,next=string,previous=string,results=[]domain.Profile}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /users/ [get]
func (h *UserHandler) ListUsersDoc() {}

// GetUser godoc
// @Summary Get user profile
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} httpx.ErrorResponse
// @Router /users/{id}/ [get]
func (h *UserHandler) GetUserDoc() {}

// Me godoc
// @Summary Current user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/me/ [get]
func (h *UserHandler) MeDoc() {}

// SetAvatar godoc
// @Summary Set avatar
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{avatar=string} true "Avatar reference"
// @Success 200 {object} object{avatar=string}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/me/avatar/ [put]
func (h *UserHandler) SetAvatarDoc() {}

// DeleteAvatar godoc
// @Summary Clear avatar
// @Tags Users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/me/avatar/ [delete]
func (h *UserHandler) DeleteAvatarDoc() {}

// SetPassword godoc
// @Summary Change password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Param request body object{current_password=string,new_password=string} true "Passwords"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/set_password/ [post]
func (h *UserHandler) SetPasswordDoc() {}

// Subscriptions godoc
// @Summary Followed authors
// @Description Authors the current user follows, each with a preview of their recipes
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param recipes_limit query int false "Recipes shown per author"
// @Success 200 {object} object{count=int,next=string,previous=string,results=[]domain.AuthorCard}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /users/subscriptions/ [get]
func (h *UserHandler) SubscriptionsDoc() {}

// Subscribe godoc
// @Summary Subscribe to an author
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Recipes shown"
// @Success 201 {object} domain.AuthorCard
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /users/{id}/subscribe/ [post]
func (h *UserHandler) SubscribeDoc() {}

// Unsubscribe godoc
// @Summary Unsubscribe from an author
// @Tags Subscriptions
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /users/{id}/subscribe/ [delete]
func (h *UserHandler) UnsubscribeDoc() {}

// Login godoc
// @Summary Obtain a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} command.LoginResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /auth/token/login/ [post]
func (h *UserHandler) LoginDoc() {}

// Logout godoc
// @Summary Discard the token
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/token/logout/ [post]
func (h *UserHandler) LogoutDoc() {}
