package resolve

import (
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// entry is one step of a pass: a region to resolve, or a shape that could
// not be followed.
type entry struct {
	region  Region
	skipped *RegionResult
}

// discover lists the regions of every part in visiting order.
func discover(doc *xml.Document) []entry {
	var out []entry
	for _, part := range doc.Parts() {
		out = append(out, discoverPart(part)...)
	}
	return out
}

func discoverPart(part *xml.Part) []entry {
	var out []entry

	// Pass 1: text boxes reached through their shape structure.
	idx := 0
	for shape, d := range part.Drawings() {
		boxes, err := d.TextBoxes()
		if err != nil {
			out = append(out, entry{skipped: &RegionResult{
				Kind:     KindShape,
				Location: Location{Part: part.Name, Pass: 1, Shape: shape},
				Status:   StatusSkippedUnsupported,
				Reason:   err.Error(),
			}})
			continue
		}
		for _, box := range boxes {
			for _, p := range box.Paragraphs() {
				loc := Location{Part: part.Name, Pass: 1, Index: idx, Shape: shape}
				out = append(out, entry{region: NewTextBoxParagraph(p, loc, box.Anchored())})
				idx++
			}
		}
	}

	// Pass 2: every text box paragraph, then the body paragraphs.
	idx = 0
	for _, p := range part.TextBoxParagraphs() {
		out = append(out, entry{region: NewTextBoxParagraph(p, Location{Part: part.Name, Pass: 2, Index: idx}, false)})
		idx++
	}
	for _, p := range part.Paragraphs() {
		out = append(out, entry{region: NewBodyParagraph(p, Location{Part: part.Name, Pass: 2, Index: idx})})
		idx++
	}

	// Pass 3: tables, depth first.
	idx = 0
	var walk func(tables []*xml.Table, path []int)
	walk = func(tables []*xml.Table, path []int) {
		for ti, tbl := range tables {
			tpath := append(append([]int(nil), path...), ti)
			for ri, row := range tbl.Rows() {
				for ci, cell := range row.Cells() {
					for _, p := range cell.Paragraphs() {
						loc := Location{Part: part.Name, Pass: 3, Index: idx, Table: tpath, Row: ri, Cell: ci}
						out = append(out, entry{region: NewCellParagraph(p, loc)})
						idx++
					}
					walk(cell.Tables(), tpath)
				}
			}
		}
	}
	walk(part.Tables(), nil)

	// Pass 4: floating text boxes.
	idx = 0
	for _, p := range part.AnchoredTextBoxParagraphs() {
		out = append(out, entry{region: NewTextBoxParagraph(p, Location{Part: part.Name, Pass: 4, Index: idx}, true)})
		idx++
	}
	return out
}
