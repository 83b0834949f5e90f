// Package viewtest provides an in-memory view.Renderer for component tests.
package viewtest

import (
	"titleview/internal/vdom"
	"titleview/internal/view"
)

// Renderer captures the output of a root component and keeps child
// instances by key so tests can drive them.
type Renderer struct {
	root     view.Component
	current  *vdom.VNode
	children map[string]view.Component
	renders  int
}

var _ view.Renderer = (*Renderer)(nil)

// New creates a test renderer attached to comp.
func New(comp view.Component) *Renderer {
	r := &Renderer{root: comp, children: map[string]view.Component{}}
	comp.SetRenderer(r)
	return r
}

// RenderRoot performs a render of the root component and returns the tree.
func (r *Renderer) RenderRoot() *vdom.VNode {
	r.renders++
	r.current = r.root.Render(r)
	return r.current
}

// ReRender is called by StateHasChanged. The root is rendered again but
// existing child instances are reused.
func (r *Renderer) ReRender() {
	r.RenderRoot()
}

// RenderChild renders child, reusing the instance kept under key if there is one.
func (r *Renderer) RenderChild(key string, child view.Component) *vdom.VNode {
	if prev, ok := r.children[key]; ok {
		child = prev
	} else {
		if k, ok := child.(view.Keyed); ok {
			k.SetKey(key)
		}
		child.SetRenderer(r)
		r.children[key] = child
	}
	return child.Render(r)
}

// Current returns the most recently rendered tree.
func (r *Renderer) Current() *vdom.VNode { return r.current }

// Child returns the child instance rendered under key.
func (r *Renderer) Child(key string) view.Component { return r.children[key] }

// Renders returns how many times the root was rendered.
func (r *Renderer) Renders() int { return r.renders }
