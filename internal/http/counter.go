package http

import (
	"errors"
	"net/http"
	"strings"

	"titleview/internal/logging"
	"titleview/internal/session"
	"titleview/internal/ssr"
	"titleview/internal/view"
)

// CounterHandler applies a widget action posted from the page, stores the
// new widget states in the session cookie and sends the browser back.
type CounterHandler struct {
	Sessions   *session.Codec
	BaseURL    string
	Defaults   view.Props
	LogRenders bool
}

func (h *CounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.From(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	key := strings.TrimSpace(r.PostForm.Get("key"))
	action := strings.TrimSpace(r.PostForm.Get("action"))
	if key == "" || action == "" {
		http.Error(w, "missing key or action", http.StatusBadRequest)
		return
	}

	q := pageQuery(r)
	p := resolveProps(ctx, q, h.Defaults)
	tree := ssr.NewApp(p, session.States(ctx), log, h.LogRenders)
	if err := tree.Dispatch(key, action); err != nil {
		log.Warn("counter.dispatch", "key", key, "action", action, "err", err)
		switch {
		case errors.Is(err, ssr.ErrUnknownChild),
			errors.Is(err, ssr.ErrNotDispatcher),
			errors.Is(err, view.ErrUnknownAction):
			http.Error(w, "bad request", http.StatusBadRequest)
		default:
			http.Error(w, "dispatch error", http.StatusInternalServerError)
		}
		return
	}

	states := tree.States()
	ck, err := h.Sessions.Cookie(states)
	if err != nil {
		log.Error("counter.session", "err", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, ck)
	log.Info("counter.dispatch", "key", key, "action", action, "value", states[key].Value)
	http.Redirect(w, r, pageLink(h.BaseURL, q.Encode()), http.StatusSeeOther)
}
