package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph is a w:p element.
type Paragraph struct {
	el *etree.Element
}

// NewParagraph wraps a w:p element.
func NewParagraph(el *etree.Element) *Paragraph {
	return &Paragraph{el: el}
}

// Element returns the underlying w:p element.
func (p *Paragraph) Element() *etree.Element {
	return p.el
}

// InFallback reports whether the paragraph sits in the mc:Fallback branch of
// an mc:AlternateContent, the copy shown only by consumers that do not
// understand the preferred mc:Choice.
func (p *Paragraph) InFallback() bool {
	return hasAncestor(p.el, nil, NamespaceMarkupCompat, "Fallback")
}

// runContainers are the inline wrappers whose runs belong to the enclosing
// paragraph.
var runContainers = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"moveTo":     true,
	"smartTag":   true,
	"customXml":  true,
	"sdt":        true,
	"sdtContent": true,
	"fldSimple":  true,
	"bdo":        true,
	"dir":        true,
}

// Runs returns the paragraph's runs in document order, including runs inside
// hyperlinks, insertions and inline content controls. Runs of paragraphs
// nested in text boxes are not part of this paragraph.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			if namespaceOf(c) != NamespaceWordML {
				continue
			}
			switch {
			case c.Tag == "r":
				runs = append(runs, NewRun(c))
			case runContainers[c.Tag]:
				walk(c)
			}
		}
	}
	walk(p.el)
	return runs
}

// Text returns the concatenated text of the paragraph's runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Style returns the paragraph style id, or "" when none is set.
func (p *Paragraph) Style() string {
	style := child(child(p.el, NamespaceWordML, "pPr"), NamespaceWordML, "pStyle")
	if style == nil {
		return ""
	}
	return style.SelectAttrValue("w:val", "")
}
