package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/appdeck/userbase/pkg/serrors"
)

// ErrorBody is the JSON error response shape shared by all API endpoints.
// Internal failure detail never leaks into Message; it stays in server logs.
type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) error {
	path := ""
	if r != nil {
		path = r.URL.Path
	}
	return WriteJSON(w, status, &ErrorBody{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      path,
	})
}

// StatusFor maps an error to the HTTP status its kind warrants. Validation and
// parsing failures are the caller's fault; everything else is internal.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case serrors.IsKind(err, serrors.KindValidation), serrors.IsKind(err, serrors.KindParsing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a caller: coded messages for
// request errors, a generic one for internal failures.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var base *serrors.Base
	if errors.As(err, &base) {
		switch base.Kind() {
		case serrors.KindValidation, serrors.KindParsing:
			return base.Message()
		}
	}
	return "An unexpected error occurred"
}
