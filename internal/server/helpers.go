package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ezerfernandes/codetabs/internal/auth"
	"github.com/ezerfernandes/codetabs/internal/content"
	"github.com/ezerfernandes/codetabs/internal/roadmap"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())

		return false
	}

	return true
}

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, roadmap.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, content.ErrMissingFields), errors.Is(err, auth.ErrInvalidInput),
		errors.Is(err, auth.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrNotSignedIn), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, content.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("op", op), zap.Error(err))
		writeError(w, status, "internal error")

		return
	}

	writeError(w, status, err.Error())
}

// currentUser returns the signed-in user or writes 401.
func (s *Server) currentUser(w http.ResponseWriter) (*auth.User, bool) {
	user, err := s.auth.CurrentUser()
	if err != nil {
		s.fail(w, "current user", err)

		return nil, false
	}

	if user == nil {
		s.fail(w, "current user", auth.ErrNotSignedIn)

		return nil, false
	}

	return user, true
}
