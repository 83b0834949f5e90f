package http

import (
	"log/slog"
	"net/http"
	"time"

	"titleview/internal/config"
	"titleview/internal/http/middleware"
	"titleview/internal/logging"
	"titleview/internal/session"
	"titleview/internal/view"
	"titleview/internal/web"
	"titleview/resources"
)

func NewMux(cfg *config.Config, sessions *session.Codec) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	rend, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	defaults := view.Props{Name: cfg.App.Name, InitialNumber: cfg.App.InitialNumber}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateWindow())

	mux.Handle("GET /{$}", &PageHandler{
		TPL:        rend,
		Title:      cfg.App.Title,
		Defaults:   defaults,
		LogRenders: cfg.LogRenders(),
	})
	mux.Handle("POST "+view.CounterPath, middleware.Limit(limiter, cfg.HTTP.TrustProxy, &CounterHandler{
		Sessions:   sessions,
		BaseURL:    cfg.BaseURL,
		Defaults:   defaults,
		LogRenders: cfg.LogRenders(),
	}))
	mux.Handle("GET /props.json", &PropsHandler{Defaults: defaults})
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(resources.FS))))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	return mux, nil
}

func WithStandardMiddleware(next http.Handler, sessions *session.Codec) http.Handler {
	return requestLogger(securityHeaders(middleware.WithSession(sessions, next)))
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// requestLogger tags the request with an id, exposes a logger carrying it
// through the context and logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := middleware.RequestID(r)
		w.Header().Set(middleware.RequestIDHeader, id)

		l := slog.Default().With("request_id", id)
		r = r.WithContext(logging.WithLogger(r.Context(), l))

		ww := &wrapWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(ww, r)
		l.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type wrapWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrapWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
