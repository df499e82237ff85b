// Package respond writes JSON responses and maps errors to safe bodies.
// Server-side failures are logged in full and answered with a generic message.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"yatube/internal/domain/entity"
)

const internalMessage = "internal server error"

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": err} with the given status code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError answers client errors (code < 500) with their message and
// field, and every server error with a generic body. Server errors are
// logged with secrets masked.
func SafeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError {
		body := map[string]string{"error": err.Error()}
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			body["field"] = verr.Field
		}
		JSON(w, code, body)
		return
	}

	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": internalMessage})
}

// Found answers 302 Found to location, the redirect every write ends with.
func Found(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}
