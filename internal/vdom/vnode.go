package vdom

// VNode represents a node of a render tree. A node with an empty Tag is a
// text node and carries its text in Content.
type VNode struct {
	Tag        string            // The HTML tag name, "" for text
	Attributes map[string]string // The attributes of the node
	Children   []*VNode          // The child nodes
	Content    string            // Text content
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]string, children []*VNode, content string) *VNode {
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
	}
}

// Text creates a text node.
func Text(s string) *VNode {
	return &VNode{Content: s}
}

// IsText reports whether n is a text node.
func (n *VNode) IsText() bool {
	return n != nil && n.Tag == ""
}

// Attr returns the value of attribute k, or "".
func (n *VNode) Attr(k string) string {
	if n == nil || n.Attributes == nil {
		return ""
	}
	return n.Attributes[k]
}

// TextContent concatenates the text of n and all of its descendants.
func (n *VNode) TextContent() string {
	if n == nil {
		return ""
	}
	s := n.Content
	for _, c := range n.Children {
		s += c.TextContent()
	}
	return s
}

// Find returns the first node in depth-first order for which match is true.
func (n *VNode) Find(match func(*VNode) bool) *VNode {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(match); f != nil {
			return f
		}
	}
	return nil
}

// Element creates an element VNode with the given children.
func Element(tag string, attrs map[string]string, children ...*VNode) *VNode {
	return NewVNode(tag, attrs, children, "")
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]string, children ...*VNode) *VNode {
	return Element("div", attrs, children...)
}

// H1 creates an <h1> VNode.
func H1(attrs map[string]string, children ...*VNode) *VNode {
	return Element("h1", attrs, children...)
}

// Span creates a <span> holding text.
func Span(text string, attrs map[string]string) *VNode {
	return NewVNode("span", attrs, nil, text)
}

// Button creates a <button> VNode with the given label.
func Button(label string, attrs map[string]string) *VNode {
	return NewVNode("button", attrs, nil, label)
}

// Form creates a <form> VNode.
func Form(attrs map[string]string, children ...*VNode) *VNode {
	return Element("form", attrs, children...)
}

// Hidden returns an <input type="hidden"> carrying name=value.
func Hidden(name, value string) *VNode {
	return NewVNode("input", map[string]string{
		"type":  "hidden",
		"name":  name,
		"value": value,
	}, nil, "")
}

// Equal reports whether a and b describe the same tree. Nil and empty
// attribute maps compare equal.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.Content != b.Content {
		return false
	}
	if len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for k, v := range a.Attributes {
		if bv, ok := b.Attributes[k]; !ok || bv != v {
			return false
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
