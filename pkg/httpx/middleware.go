package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tair/foodgram/pkg/auth"
	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Auth builds the authentication middlewares
type Auth struct {
	tokens TokenValidator
}

func NewAuth(tokens TokenValidator) *Auth {
	return &Auth{tokens: tokens}
}

// bearer extracts the token; both "Bearer" and "Token" schemes are accepted
func bearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func (a *Auth) authenticate(r *http.Request) (auth.Actor, error) {
	token, present := bearer(r)
	if !present {
		return auth.Actor{}, nil
	}
	if token == "" {
		return auth.Actor{}, errs.Unauthorized("invalid authorization header format")
	}
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return auth.Actor{}, errs.Unauthorized("invalid token")
	}
	return auth.ActorFromClaims(claims), nil
}

// OptionalAuth attaches the actor when a token is sent; a bad token is rejected
func (a *Auth) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.authenticate(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		if actor.Authenticated() {
			r = r.WithContext(auth.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAuth rejects anonymous requests
func (a *Auth) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return a.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		if !auth.ActorFrom(r.Context()).Authenticated() {
			RespondError(w, r, errs.Unauthorized("authentication credentials were not provided"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects non-admin requests
func (a *Auth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !auth.ActorFrom(r.Context()).IsAdmin() {
			RespondError(w, r, errs.PermissionDenied("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Instrument records request count and latency under the route template endpoint
func Instrument(m *metrics.Metrics, endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.ObserveHTTP(r.Method, endpoint, strconv.Itoa(rw.statusCode), time.Since(start))
	}
}

// RequestLogger logs every request with its status and duration
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		event := logger.Info(r.Context())
		if rw.statusCode >= http.StatusBadRequest {
			event = logger.Error(r.Context())
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request completed")
	})
}

// Recoverer turns a handler panic into a 500
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(r.Context()).
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Handler panicked")
				RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
