package http

import (
	"bytes"
	"net/http"

	"titleview/internal/logging"
	"titleview/internal/session"
	"titleview/internal/ssr"
	"titleview/internal/view"
	"titleview/internal/web"
)

type PageHandler struct {
	TPL        *web.Renderer
	Title      string
	Defaults   view.Props
	LogRenders bool
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := resolveProps(ctx, r.URL.Query(), h.Defaults)
	tree := ssr.NewApp(p, session.States(ctx), logging.From(ctx), h.LogRenders)

	data, err := web.NewPageData(h.Title, tree.Render(), p)
	if err != nil {
		logging.From(ctx).Error("page.serialize", "err", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := h.TPL.Render(&buf, "app", data); err != nil {
		logging.From(ctx).Error("could not render", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
