package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// statusClientClosedRequest answers requests whose caller went away first.
const statusClientClosedRequest = 499

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps a service error to a status code and the text the client
// may see. ok is false for unclassified errors.
func statusFor(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "request cancelled", true
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, common.ErrUnauthenticated.Error(), true
	case errors.Is(err, common.ErrTokenRevoked):
		return http.StatusUnauthorized, common.ErrTokenRevoked.Error(), true
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken.Error(), true
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, common.ErrorUnauthorized.Error(), true
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound.Error(), true
	case errors.Is(err, common.ErrDuplicateName):
		return http.StatusConflict, common.ErrDuplicateName.Error(), true
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusConflict, common.ErrEmailTaken.Error(), true
	case errors.Is(err, common.ErrInvalidUser):
		return http.StatusUnprocessableEntity, common.ErrInvalidUser.Error(), true
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable", true
	}
	return http.StatusInternalServerError, common.ErrorInternal.Error(), false
}

// writeError answers with the mapped status. Store and internal failures are
// logged with their cause; the client only gets the generic text.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg, ok := statusFor(err)
	if status == statusClientClosedRequest {
		s.logger.Debug(r.Context(), "request cancelled by client",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}
	if !ok || status == http.StatusServiceUnavailable {
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", common.ErrInvalidInput, tooLarge.Limit)
		}
		return fmt.Errorf("%w: malformed request body", common.ErrInvalidInput)
	}
	return nil
}
