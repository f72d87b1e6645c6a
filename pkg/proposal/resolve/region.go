package resolve

import (
	"fmt"
	"strings"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// Kind is the kind of a text region.
type Kind int

const (
	KindBodyParagraph Kind = iota
	KindCellParagraph
	KindTextBoxParagraph
	// KindShape marks a report entry for a drawing that could not be followed.
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindBodyParagraph:
		return "body"
	case KindCellParagraph:
		return "cell"
	case KindTextBoxParagraph:
		return "textbox"
	case KindShape:
		return "shape"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Location identifies a region within the document.
type Location struct {
	Part string // part name, e.g. word/document.xml
	Pass int    // discovery pass, 1 to 4
	// Index is the position of the region within its pass.
	Index int
	// Table holds the path of table indexes for cell paragraphs, outermost
	// first; Row and Cell address the innermost table.
	Table []int
	Row   int
	Cell  int
	// Shape is the index of the drawing for pass 1 regions.
	Shape int
}

func (l Location) String() string {
	switch {
	case l.Table != nil:
		return fmt.Sprintf("%s pass %d table %v row %d cell %d #%d", l.Part, l.Pass, l.Table, l.Row, l.Cell, l.Index)
	case l.Pass == 1:
		return fmt.Sprintf("%s pass 1 shape %d #%d", l.Part, l.Shape, l.Index)
	}
	return fmt.Sprintf("%s pass %d #%d", l.Part, l.Pass, l.Index)
}

// Run is the unit of text a region is made of.
type Run interface {
	Text() string
	SetText(string)
}

// Region is an ordered sequence of runs forming one logical line of text.
type Region interface {
	Kind() Kind
	Location() Location
	Runs() []Run
	Text() string
}

// fallbackRegion is implemented by regions that can live in an mc:Fallback
// copy of content also present in the mc:Choice branch.
type fallbackRegion interface {
	InFallback() bool
}

// IsEmpty reports whether the region has no text besides whitespace.
func IsEmpty(r Region) bool {
	return strings.TrimSpace(r.Text()) == ""
}

type paragraphRegion struct {
	para *xml.Paragraph
	loc  Location
}

func (p *paragraphRegion) Location() Location { return p.loc }

func (p *paragraphRegion) Text() string { return p.para.Text() }

func (p *paragraphRegion) InFallback() bool { return p.para.InFallback() }

func (p *paragraphRegion) Runs() []Run {
	runs := p.para.Runs()
	out := make([]Run, len(runs))
	for i, r := range runs {
		out[i] = r
	}
	return out
}

// BodyParagraph is a top-level paragraph of a part body.
type BodyParagraph struct{ paragraphRegion }

// NewBodyParagraph wraps a body paragraph as a region.
func NewBodyParagraph(p *xml.Paragraph, loc Location) *BodyParagraph {
	return &BodyParagraph{paragraphRegion{para: p, loc: loc}}
}

// Kind returns KindBodyParagraph.
func (*BodyParagraph) Kind() Kind { return KindBodyParagraph }

// CellParagraph is a paragraph inside a table cell.
type CellParagraph struct{ paragraphRegion }

// NewCellParagraph wraps a table cell paragraph as a region.
func NewCellParagraph(p *xml.Paragraph, loc Location) *CellParagraph {
	return &CellParagraph{paragraphRegion{para: p, loc: loc}}
}

// Kind returns KindCellParagraph.
func (*CellParagraph) Kind() Kind { return KindCellParagraph }

// TextBoxParagraph is a paragraph inside a text box.
type TextBoxParagraph struct {
	paragraphRegion
	Anchored bool
}

// NewTextBoxParagraph wraps a text box paragraph as a region.
func NewTextBoxParagraph(p *xml.Paragraph, loc Location, anchored bool) *TextBoxParagraph {
	return &TextBoxParagraph{paragraphRegion: paragraphRegion{para: p, loc: loc}, Anchored: anchored}
}

// Kind returns KindTextBoxParagraph.
func (*TextBoxParagraph) Kind() Kind { return KindTextBoxParagraph }

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
