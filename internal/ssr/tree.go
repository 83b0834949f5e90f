// Package ssr hosts components on the server: it schedules renders for one
// request, restores widget state carried by the client and collects it again
// after user actions.
package ssr

import (
	"errors"
	"fmt"
	"maps"

	"titleview/internal/vdom"
	"titleview/internal/view"
)

// ErrUnknownChild is returned when an action targets a key no render produced.
var ErrUnknownChild = errors.New("unknown component key")

// ErrNotDispatcher is returned when the targeted child accepts no actions.
var ErrNotDispatcher = errors.New("component accepts no actions")

// Tree is the rendering scheduler for a single request. It is not safe for
// concurrent use; each request builds its own.
type Tree struct {
	root     view.Component
	states   view.States
	children map[string]view.Component
	current  *vdom.VNode
	renders  int
}

var _ view.Renderer = (*Tree)(nil)

// New attaches root to a new Tree. states holds previously collected
// Stateful child states by key and may be nil.
func New(root view.Component, states view.States) *Tree {
	t := &Tree{
		root:     root,
		states:   maps.Clone(states),
		children: map[string]view.Component{},
	}
	if t.states == nil {
		t.states = view.States{}
	}
	root.SetRenderer(t)
	return t
}

// Render runs the render cycle and returns the resulting tree.
func (t *Tree) Render() *vdom.VNode {
	t.renders++
	t.current = t.root.Render(t)
	return t.current
}

// ReRender is invoked through StateHasChanged.
func (t *Tree) ReRender() {
	t.Render()
}

// RenderChild renders child under key. The first time a key is seen the
// instance is adopted and its saved state restored; later renders reuse it.
// A saved state the child refuses (saved for another seed) is discarded.
func (t *Tree) RenderChild(key string, child view.Component) *vdom.VNode {
	if prev, ok := t.children[key]; ok {
		return prev.Render(t)
	}
	if k, ok := child.(view.Keyed); ok {
		k.SetKey(key)
	}
	if s, ok := child.(view.Stateful); ok {
		if v, ok := t.states[key]; ok && !s.SetState(v) {
			delete(t.states, key)
		}
	}
	child.SetRenderer(t)
	t.children[key] = child
	return child.Render(t)
}

// Current returns the latest rendered tree, rendering once if needed.
func (t *Tree) Current() *vdom.VNode {
	if t.current == nil {
		return t.Render()
	}
	return t.current
}

// Child returns the instance rendered under key, or nil.
func (t *Tree) Child(key string) view.Component {
	return t.children[key]
}

// Renders reports how many render cycles ran.
func (t *Tree) Renders() int { return t.renders }

// States snapshots the state of every Stateful child.
func (t *Tree) States() view.States {
	out := maps.Clone(t.states)
	for k, c := range t.children {
		if s, ok := c.(view.Stateful); ok {
			out[k] = s.State()
		}
	}
	return out
}

// Dispatch sends action to the child rendered under key. The tree is
// rendered first if that has not happened yet, so children exist.
func (t *Tree) Dispatch(key, action string) error {
	t.Current()
	c, ok := t.children[key]
	if !ok {
		return fmt.Errorf("dispatch to %q: %w", key, ErrUnknownChild)
	}
	d, ok := c.(view.Dispatcher)
	if !ok {
		return fmt.Errorf("dispatch to %q: %w", key, ErrNotDispatcher)
	}
	if err := d.Dispatch(action); err != nil {
		return fmt.Errorf("dispatch to %q: %w", key, err)
	}
	return nil
}
