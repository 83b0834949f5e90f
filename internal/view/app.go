package view

import (
	"log/slog"

	"titleview/internal/vdom"
)

// CounterKey identifies the App's counter widget instance.
const CounterKey = "app/counter"

// TitlePrefix is prepended to the name in the heading.
const TitlePrefix = "title:"

// Props is the input record of App. Both fields are optional: an absent
// Name renders as "title:" and an absent InitialNumber starts the counter at 0.
type Props struct {
	Name          string `json:"Name"`
	InitialNumber int    `json:"InitialNumber"`
}

// LogValue lets the full record appear as a group in structured logs.
func (p Props) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Name", p.Name),
		slog.Int("InitialNumber", p.InitialNumber),
	)
}

// Title maps props and an already rendered counter to the App tree:
// a container holding the heading followed by the counter.
func Title(p Props, counter *vdom.VNode) *vdom.VNode {
	children := []*vdom.VNode{
		vdom.H1(nil, vdom.Text(TitlePrefix+p.Name)),
	}
	if counter != nil {
		children = append(children, counter)
	}
	return vdom.Div(map[string]string{"class": "app"}, children...)
}

// App is the top-level view: a title and a counter widget seeded with
// InitialNumber.
type App struct {
	ComponentBase
	Props Props
}

// NewApp returns an App for p.
func NewApp(p Props) *App {
	return &App{Props: p}
}

func (a *App) Render(r Renderer) *vdom.VNode {
	counter := NewCounter(a.Props.InitialNumber)
	return Title(a.Props, r.RenderChild(CounterKey, counter))
}
