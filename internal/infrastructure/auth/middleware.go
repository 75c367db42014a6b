package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

// RequireAuth rejects requests without an Authorization header. Presence is
// all that is checked; token contents are not validated.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			slog.Warn("unauthorized access attempt", "path", r.URL.Path, "method", r.Method)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": pkgerrors.ErrUnauthorized.Error()})
			return
		}

		next.ServeHTTP(w, r)
	})
}
