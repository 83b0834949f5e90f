package web

import (
	"bytes"
	"html/template"

	"titleview/internal/vdom"
)

// PageData is rendered by the "app" page: the server-rendered tree plus the
// props the client can pick up from window.APP_PROPS.
type PageData struct {
	Title           string
	RenderedContent template.HTML
	Props           any
}

// NewPageData serializes tree into a page.
func NewPageData(title string, tree *vdom.VNode, props any) (PageData, error) {
	var buf bytes.Buffer
	if err := vdom.Render(&buf, tree); err != nil {
		return PageData{}, err
	}
	return PageData{
		Title:           title,
		RenderedContent: template.HTML(buf.String()),
		Props:           props,
	}, nil
}
