package dom

import (
	"sort"
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// HTML renders the children of the root container.
func (d *Document) HTML() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var b strings.Builder
	for _, c := range d.root.children {
		writeHTML(&b, c)
	}
	return b.String()
}

// OuterHTML renders n and its subtree. The caller must not patch the
// document concurrently.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	writeHTML(&b, n)
	return b.String()
}

func writeHTML(b *strings.Builder, n *Node) {
	if n.Type == TextNode {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)

	attrs := n.RenderedAttrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(attrs[k]))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if vdom.Tag(n.Tag).IsVoid() {
		return
	}
	for _, c := range n.children {
		writeHTML(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it also escapes
// whitespace characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
