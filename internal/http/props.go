package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"titleview/internal/logging"
	"titleview/internal/view"
)

// Query parameters overriding the configured props.
const (
	paramName   = "name"
	paramNumber = "n"
)

// resolveProps overlays query overrides on defaults. A name parameter that is
// present but empty overrides the default with "". A non-numeric n keeps the
// default.
func resolveProps(ctx context.Context, q url.Values, defaults view.Props) view.Props {
	p := defaults
	if q.Has(paramName) {
		p.Name = q.Get(paramName)
	}
	if raw := strings.TrimSpace(q.Get(paramNumber)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			logging.From(ctx).Debug("props.bad_number", "value", raw, "err", err)
		} else {
			p.InitialNumber = n
		}
	}
	return p
}

type PropsHandler struct {
	Defaults view.Props
}

func (h *PropsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := resolveProps(r.Context(), r.URL.Query(), h.Defaults)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		logging.From(r.Context()).Error("props.encode", "err", err)
	}
}
