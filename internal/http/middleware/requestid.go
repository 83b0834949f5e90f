package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID returns the id supplied by the client when it is a valid UUID,
// otherwise a fresh one.
func RequestID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(RequestIDHeader)); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}
