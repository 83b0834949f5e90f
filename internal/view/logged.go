package view

import (
	"log/slog"

	"titleview/internal/vdom"
)

// RenderedMsg is the message of the diagnostic entry written per render.
const RenderedMsg = "APP rendered"

type logged struct {
	Component
	log *slog.Logger
}

// Logged wraps c so that every Render writes one RenderedMsg entry carrying
// the component's input record before delegating. When enabled is false c is
// returned unchanged. Components implementing slog.LogValuer control how the
// record is serialized.
func Logged(c Component, l *slog.Logger, enabled bool) Component {
	if !enabled || c == nil {
		return c
	}
	if l == nil {
		l = slog.Default()
	}
	return &logged{Component: c, log: l}
}

func (l *logged) Render(r Renderer) *vdom.VNode {
	l.log.Info(RenderedMsg, slog.Any("props", l.Component))
	return l.Component.Render(r)
}

// LogValue reports the App's props.
func (a *App) LogValue() slog.Value {
	return a.Props.LogValue()
}
