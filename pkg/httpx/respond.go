// Package httpx holds the JSON, error and middleware helpers shared by the HTTP handlers.
package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/tair/foodgram/pkg/errs"
	"github.com/tair/foodgram/pkg/logger"
)

const maxBodyBytes = 10 << 20

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// RespondJSON writes data as a JSON body
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// RespondNoContent writes an empty 204 response
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError maps err to a status code and writes the error body
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	RespondJSON(w, status, ErrorResponse{
		Error: errs.PublicMessage(err),
		Field: errs.FieldOf(err),
	})
}

// DecodeJSON reads the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Validation("request body is empty")
		}
		return errs.Validation("invalid request body: %v", err)
	}
	return nil
}

// PathID parses the named route variable as a positive id
func PathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NotFound("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
