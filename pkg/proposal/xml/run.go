package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Run is a w:r element: a span of text sharing one set of run properties.
type Run struct {
	el *etree.Element
}

// NewRun wraps a w:r element.
func NewRun(el *etree.Element) *Run {
	return &Run{el: el}
}

// Element returns the underlying w:r element.
func (r *Run) Element() *etree.Element {
	return r.el
}

// Properties returns the run's w:rPr element, or nil when the run carries
// direct formatting from its style only.
func (r *Run) Properties() *etree.Element {
	return child(r.el, NamespaceWordML, "rPr")
}

// Text returns the visible text of the run. Tabs render as "\t" and text
// wrapping breaks as "\n"; page and column breaks contribute nothing.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.el.ChildElements() {
		if namespaceOf(c) != NamespaceWordML {
			continue
		}
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			if isLineBreak(c) {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// SetText replaces the text content of the run. Text-bearing children are
// removed and the new content is written where the first of them stood;
// properties, drawings, field characters and page breaks are kept.
func (r *Run) SetText(text string) {
	at := -1
	var stale []*etree.Element
	for i, tok := range r.el.Child {
		c, ok := tok.(*etree.Element)
		if !ok || !isTextBearing(c) {
			continue
		}
		if at < 0 {
			at = i
		}
		stale = append(stale, c)
	}
	for _, c := range stale {
		r.el.RemoveChild(c)
	}
	if at < 0 {
		at = len(r.el.Child)
	}
	for _, c := range r.textElements(text) {
		r.el.InsertChildAt(at, c)
		at++
	}
}

// textElements renders text as a sequence of w:t, w:tab and w:br elements.
func (r *Run) textElements(text string) []*etree.Element {
	var out []*etree.Element
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		t := etree.NewElement(prefixed(r.el, "t"))
		s := buf.String()
		if strings.TrimSpace(s) != s {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
		out = append(out, t)
		buf.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			out = append(out, etree.NewElement(prefixed(r.el, "tab")))
		case '\n':
			flush()
			out = append(out, etree.NewElement(prefixed(r.el, "br")))
		case '\r':
		default:
			buf.WriteRune(ch)
		}
	}
	flush()
	return out
}

func isTextBearing(el *etree.Element) bool {
	if namespaceOf(el) != NamespaceWordML {
		return false
	}
	switch el.Tag {
	case "t", "tab":
		return true
	case "br", "cr":
		return isLineBreak(el)
	}
	return false
}

// isLineBreak reports whether a w:br or w:cr element is a text wrapping
// break rather than a page or column break.
func isLineBreak(el *etree.Element) bool {
	if el.Tag == "cr" {
		return true
	}
	kind := el.SelectAttrValue("w:type", "")
	if kind == "" {
		kind = el.SelectAttrValue("type", "")
	}
	return kind == "" || kind == "textWrapping"
}
