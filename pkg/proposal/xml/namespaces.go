package xml

import (
	"github.com/beevik/etree"
)

// Namespace URIs of the elements the package inspects.
const (
	NamespaceWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceWordDrawing   = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NamespaceDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespacePicture       = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	NamespaceWordShape     = "http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
	NamespaceWordGroup     = "http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"
	NamespaceWordCanvas    = "http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas"
	NamespaceVML           = "urn:schemas-microsoft-com:vml"
	NamespaceMarkupCompat  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// conventionalNamespaces maps the prefixes Word writes to their namespace
// URIs. It is consulted when a prefix is not declared anywhere in scope,
// which happens with hand-written fragments.
var conventionalNamespaces = map[string]string{
	"w":    NamespaceWordML,
	"r":    NamespaceRelationships,
	"wp":   NamespaceWordDrawing,
	"a":    NamespaceDrawingML,
	"pic":  NamespacePicture,
	"wps":  NamespaceWordShape,
	"wpg":  NamespaceWordGroup,
	"wpc":  NamespaceWordCanvas,
	"v":    NamespaceVML,
	"mc":   NamespaceMarkupCompat,
	"o":    "urn:schemas-microsoft-com:office:office",
	"w10":  "urn:schemas-microsoft-com:office:word",
	"w14":  "http://schemas.microsoft.com/office/word/2010/wordml",
	"w15":  "http://schemas.microsoft.com/office/word/2012/wordml",
	"wp14": "http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing",
}

// namespaceOf returns the namespace URI of el, falling back to the
// conventional URI for its prefix.
func namespaceOf(el *etree.Element) string {
	if uri := el.NamespaceURI(); uri != "" {
		return uri
	}
	return conventionalNamespaces[el.Space]
}

// is reports whether el is the element {ns}local.
func is(el *etree.Element, ns, local string) bool {
	return el != nil && el.Tag == local && namespaceOf(el) == ns
}

// isWord reports whether el is the WordprocessingML element w:local.
func isWord(el *etree.Element, local string) bool {
	return is(el, NamespaceWordML, local)
}

// child returns the first child element {ns}local of el.
func child(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if is(c, ns, local) {
			return c
		}
	}
	return nil
}

// descendants returns, in document order, every element below root for which
// match returns true. When match accepts an element, descend decides whether
// its subtree is searched as well.
func descendants(root *etree.Element, match func(*etree.Element) bool, descend bool) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			if match(c) {
				out = append(out, c)
				if !descend {
					continue
				}
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// hasAncestor reports whether some ancestor of el, below stop, is {ns}local.
func hasAncestor(el, stop *etree.Element, ns, local string) bool {
	for p := el.Parent(); p != nil && p != stop; p = p.Parent() {
		if is(p, ns, local) {
			return true
		}
	}
	return false
}

// prefixed builds a tag name in the same prefix as el, so new children match
// the declarations already in scope.
func prefixed(el *etree.Element, local string) string {
	if el.Space == "" {
		return local
	}
	return el.Space + ":" + local
}
