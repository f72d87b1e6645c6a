package xml

import (
	"fmt"
	"regexp"

	"github.com/beevik/etree"
)

// PartKind classifies a text-bearing part of a DOCX package.
type PartKind int

const (
	// PartMain is word/document.xml.
	PartMain PartKind = iota
	// PartHeader is a word/headerN.xml part.
	PartHeader
	// PartFooter is a word/footerN.xml part.
	PartFooter
)

// String returns the part kind name.
func (k PartKind) String() string {
	switch k {
	case PartMain:
		return "document"
	case PartHeader:
		return "header"
	case PartFooter:
		return "footer"
	}
	return fmt.Sprintf("PartKind(%d)", int(k))
}

// MainPartName is the path of the main document part.
const MainPartName = "word/document.xml"

var (
	headerPartPattern = regexp.MustCompile(`^word/header\d+\.xml$`)
	footerPartPattern = regexp.MustCompile(`^word/footer\d+\.xml$`)
)

// KindOf classifies a part name. The second result is false for parts that
// do not carry body text.
func KindOf(name string) (PartKind, bool) {
	switch {
	case name == MainPartName:
		return PartMain, true
	case headerPartPattern.MatchString(name):
		return PartHeader, true
	case footerPartPattern.MatchString(name):
		return PartFooter, true
	}
	return 0, false
}

// Part is a parsed text-bearing XML part.
type Part struct {
	Name string
	Kind PartKind

	doc *etree.Document
}

// ParsePart parses the XML of a text-bearing part.
func ParsePart(name string, data []byte) (*Part, error) {
	kind, ok := KindOf(name)
	if !ok {
		return nil, fmt.Errorf("%s is not a document, header or footer part", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", name)
	}
	if kind == PartMain && child(doc.Root(), NamespaceWordML, "body") == nil {
		return nil, fmt.Errorf("failed to parse %s: no w:body element", name)
	}
	return &Part{Name: name, Kind: kind, doc: doc}, nil
}

// Root returns the part's root element.
func (p *Part) Root() *etree.Element {
	return p.doc.Root()
}

// Body returns the element holding block content: w:body for the main part,
// the w:hdr or w:ftr root otherwise.
func (p *Part) Body() *etree.Element {
	if p.Kind == PartMain {
		return child(p.Root(), NamespaceWordML, "body")
	}
	return p.Root()
}

// Bytes serializes the part, keeping the XML declaration it was read with.
func (p *Part) Bytes() ([]byte, error) {
	data, err := p.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", p.Name, err)
	}
	return data, nil
}

// Paragraphs returns the top-level paragraphs of the body.
func (p *Part) Paragraphs() []*Paragraph {
	return paragraphsOf(p.Body())
}

// Tables returns the top-level tables of the body. Nested tables are reached
// through TableCell.Tables.
func (p *Part) Tables() []*Table {
	return tablesOf(p.Body())
}

// Drawings returns every w:drawing and w:pict element of the part in
// document order, including those nested inside other text boxes.
func (p *Part) Drawings() []*Drawing {
	var out []*Drawing
	match := func(e *etree.Element) bool { return isWord(e, "drawing") || isWord(e, "pict") }
	for _, el := range descendants(p.Root(), match, true) {
		out = append(out, &Drawing{el: el})
	}
	return out
}

// TextBoxParagraphs returns every paragraph that lives inside a
// w:txbxContent element, whatever shape structure surrounds it.
func (p *Part) TextBoxParagraphs() []*Paragraph {
	match := func(e *etree.Element) bool {
		return isWord(e, "p") && hasAncestor(e, nil, NamespaceWordML, "txbxContent")
	}
	return wrapParagraphs(descendants(p.Root(), match, true))
}

// AnchoredTextBoxParagraphs returns the paragraphs of text boxes whose
// drawing floats with a wp:anchor frame.
func (p *Part) AnchoredTextBoxParagraphs() []*Paragraph {
	match := func(e *etree.Element) bool {
		return isWord(e, "p") &&
			hasAncestor(e, nil, NamespaceWordML, "txbxContent") &&
			hasAncestor(e, nil, NamespaceWordDrawing, "anchor")
	}
	return wrapParagraphs(descendants(p.Root(), match, true))
}

// AllParagraphs returns every paragraph of the part in document order.
func (p *Part) AllParagraphs() []*Paragraph {
	return wrapParagraphs(descendants(p.Root(), func(e *etree.Element) bool { return isWord(e, "p") }, true))
}

func wrapParagraphs(els []*etree.Element) []*Paragraph {
	out := make([]*Paragraph, 0, len(els))
	for _, el := range els {
		out = append(out, NewParagraph(el))
	}
	return out
}

// Document is the set of text-bearing parts of one DOCX package. The main
// part comes first, followed by headers and footers.
type Document struct {
	parts []*Part
}

// NewDocument groups parsed parts into a document. Parts are ordered main
// part first, then headers, then footers, keeping the given order within
// each kind.
func NewDocument(parts ...*Part) *Document {
	d := &Document{}
	for _, kind := range []PartKind{PartMain, PartHeader, PartFooter} {
		for _, p := range parts {
			if p.Kind == kind {
				d.parts = append(d.parts, p)
			}
		}
	}
	return d
}

// Parts returns the document's parts in processing order.
func (d *Document) Parts() []*Part {
	return d.parts
}

// Main returns the main document part, or nil.
func (d *Document) Main() *Part {
	if len(d.parts) > 0 && d.parts[0].Kind == PartMain {
		return d.parts[0]
	}
	return nil
}

// Part returns the part with the given name, or nil.
func (d *Document) Part(name string) *Part {
	for _, p := range d.parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}
