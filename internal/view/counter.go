package view

import (
	"fmt"
	"strconv"

	"titleview/internal/vdom"
)

// Counter actions accepted by Dispatch.
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
	ActionReset     = "reset"
)

// CounterPath is where the counter form posts its actions.
const CounterPath = "/counter"

// Counter is a widget showing a number the user can step up and down.
// Default is the value it starts from and returns to on reset; Count is
// owned by the widget and survives re-renders of its parent through the host.
type Counter struct {
	ComponentBase

	Default int
	Count   int

	// Key is set by the host when the counter is rendered as a child.
	Key string
}

// NewCounter returns a counter starting at defaultNum.
func NewCounter(defaultNum int) *Counter {
	return &Counter{Default: defaultNum, Count: defaultNum}
}

func (c *Counter) Increment() {
	c.Count++
	c.StateHasChanged()
}

func (c *Counter) Decrement() {
	c.Count--
	c.StateHasChanged()
}

func (c *Counter) Reset() {
	c.Count = c.Default
	c.StateHasChanged()
}

// Dispatch applies a named action.
func (c *Counter) Dispatch(action string) error {
	switch action {
	case ActionIncrement:
		c.Increment()
	case ActionDecrement:
		c.Decrement()
	case ActionReset:
		c.Reset()
	default:
		return fmt.Errorf("counter %q: %w", action, ErrUnknownAction)
	}
	return nil
}

func (c *Counter) State() State {
	return State{Value: c.Count, Seed: c.Default}
}

func (c *Counter) SetState(s State) bool {
	if s.Seed != c.Default {
		return false
	}
	c.Count = s.Value
	return true
}

// SetKey records the instance key the host assigned.
func (c *Counter) SetKey(key string) { c.Key = key }

func (c *Counter) Render(_ Renderer) *vdom.VNode {
	form := vdom.Form(map[string]string{"method": "post", "action": CounterPath},
		vdom.Hidden("key", c.Key),
		vdom.Button("-", map[string]string{"type": "submit", "name": "action", "value": ActionDecrement}),
		vdom.Button("+", map[string]string{"type": "submit", "name": "action", "value": ActionIncrement}),
		vdom.Button("reset", map[string]string{"type": "submit", "name": "action", "value": ActionReset}),
	)
	return vdom.Div(map[string]string{"class": "counter", "data-default": strconv.Itoa(c.Default)},
		vdom.Span(strconv.Itoa(c.Count), map[string]string{"class": "counter-value"}),
		form,
	)
}
