package middleware

import (
	"net/http"

	"titleview/internal/logging"
	"titleview/internal/session"
)

// WithSession decodes the widget state cookie into the request context.
// A missing or invalid cookie leaves the context without states so widgets
// start from their defaults.
func WithSession(codec *session.Codec, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		states, err := codec.FromRequest(r)
		if err != nil {
			logging.From(r.Context()).Debug("session.invalid", "err", err)
			next.ServeHTTP(w, r)
			return
		}
		if states != nil {
			r = r.WithContext(session.WithStates(r.Context(), states))
		}
		next.ServeHTTP(w, r)
	})
}
