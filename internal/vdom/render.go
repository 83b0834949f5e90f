package vdom

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTML converts the tree rooted at n into an *html.Node. Element content
// becomes a leading text child. Attributes are emitted in key order so the
// output is stable across renders.
func ToHTML(n *VNode) *html.Node {
	if n == nil {
		return nil
	}
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.Attr = append(el.Attr, html.Attribute{Key: k, Val: n.Attributes[k]})
	}
	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, c := range n.Children {
		if hc := ToHTML(c); hc != nil {
			el.AppendChild(hc)
		}
	}
	return el
}

// Render writes the HTML serialization of n to w.
func Render(w io.Writer, n *VNode) error {
	hn := ToHTML(n)
	if hn == nil {
		return nil
	}
	if err := html.Render(w, hn); err != nil {
		return fmt.Errorf("render %q: %w", n.Tag, err)
	}
	return nil
}

// RenderString returns the HTML serialization of n.
func RenderString(n *VNode) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
