package view

import (
	"errors"
	"log/slog"

	"titleview/internal/vdom"
)

// ErrUnknownAction is returned by a Dispatcher for an action it does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Component is implemented by everything the host renders.
type Component interface {
	// Render generates the render tree for this component.
	// The renderer parameter provides access to host services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the host to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// Renderer is the host-managed rendering scheduler injected into components.
type Renderer interface {
	// RenderChild renders a child component. The key identifies the child
	// instance so the host can keep its state between renders.
	RenderChild(key string, child Component) *vdom.VNode

	// ReRender requests that the host re-run the render cycle.
	ReRender()
}

// State is a widget value saved by the host together with the seed (the
// initial value) the widget was created from.
type State struct {
	Value int `json:"v"`
	Seed  int `json:"s"`
}

// States holds saved widget states by instance key.
type States map[string]State

// Stateful components carry a State the host keeps between requests.
type Stateful interface {
	Component
	State() State
	// SetState restores s and reports whether it was applied. A state saved
	// for a different seed is refused and the widget keeps its initial value.
	SetState(s State) bool
}

// Dispatcher components accept named user actions.
type Dispatcher interface {
	Component
	Dispatch(action string) error
}

// Keyed components are told the instance key the host rendered them under.
type Keyed interface {
	SetKey(key string)
}

// ComponentBase is embedded by components to gain StateHasChanged.
type ComponentBase struct {
	renderer Renderer
}

// SetRenderer is called by the host to inject the renderer. It should not
// be called by component code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// StateHasChanged signals that the component's state was updated and the
// tree should be rendered again.
func (b *ComponentBase) StateHasChanged() {
	if b.renderer == nil {
		slog.Debug("view.state_changed_unmounted")
		return
	}
	b.renderer.ReRender()
}
