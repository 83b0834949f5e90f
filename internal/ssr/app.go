package ssr

import (
	"log/slog"

	"titleview/internal/view"
)

// NewApp builds the Tree for the App view with props p. When logRenders is
// set every render cycle writes the view's diagnostic entry to l.
func NewApp(p view.Props, states view.States, l *slog.Logger, logRenders bool) *Tree {
	return New(view.Logged(view.NewApp(p), l, logRenders), states)
}
