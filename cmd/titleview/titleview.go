package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"titleview/internal/config"
	apphttp "titleview/internal/http"
	"titleview/internal/logging"
	"titleview/internal/session"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil && cfg == nil {
		panic(err)
	}

	l := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	slog.SetDefault(l)

	warnConfig(l, *cfgPath, cfg, err)

	sessions, err := session.NewCodec(cfg.Security.SessionSecret, cfg.SessionTTL())
	if err != nil {
		slog.Error("session.codec", "err", err)
		os.Exit(1)
	}

	mux, err := apphttp.NewMux(cfg, sessions)
	if err != nil {
		slog.Error("Couldn't parse templates", "err", err)
		os.Exit(1)
	}
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      apphttp.WithStandardMiddleware(mux, sessions),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("http.starting", "addr", cfg.HTTP.Address, "log_renders", cfg.LogRenders())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http.listen", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http.shutting_down")
	_ = srv.Shutdown(ctx)
	slog.Info("http.stopped")
}

// warnConfig reports a config that could not be read and a session secret
// left at its public default, whichever way it got there.
func warnConfig(l *slog.Logger, path string, cfg *config.Config, loadErr error) {
	if loadErr != nil {
		l.Warn("Could not read config file. Will run with default values", "path", path, "err", loadErr)
	}
	if cfg.DefaultSecret() {
		l.Warn("The session secret is the default value. This is a security risk in production.")
	}
}
