package xml

import (
	"github.com/beevik/etree"
)

// Table is a w:tbl element.
type Table struct {
	el *etree.Element
}

// TableRow is a w:tr element.
type TableRow struct {
	el *etree.Element
}

// TableCell is a w:tc element.
type TableCell struct {
	el *etree.Element
}

// NewTable wraps a w:tbl element.
func NewTable(el *etree.Element) *Table {
	return &Table{el: el}
}

// Element returns the underlying w:tbl element.
func (t *Table) Element() *etree.Element {
	return t.el
}

// Rows returns the table rows, looking through row-level content controls.
func (t *Table) Rows() []*TableRow {
	var rows []*TableRow
	for _, el := range blockChildren(t.el, "tr") {
		rows = append(rows, &TableRow{el: el})
	}
	return rows
}

// Cells returns the row's cells, looking through cell-level content controls.
func (r *TableRow) Cells() []*TableCell {
	var cells []*TableCell
	for _, el := range blockChildren(r.el, "tc") {
		cells = append(cells, &TableCell{el: el})
	}
	return cells
}

// Paragraphs returns the paragraphs directly inside the cell.
func (c *TableCell) Paragraphs() []*Paragraph {
	return paragraphsOf(c.el)
}

// Tables returns the tables nested directly inside the cell.
func (c *TableCell) Tables() []*Table {
	return tablesOf(c.el)
}

// blockChildren returns the w:local children of el, descending into block
// level content controls (w:sdt/w:sdtContent) and w:customXml wrappers.
func blockChildren(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if namespaceOf(c) != NamespaceWordML {
			continue
		}
		switch c.Tag {
		case local:
			out = append(out, c)
		case "sdt", "sdtContent", "customXml":
			out = append(out, blockChildren(c, local)...)
		}
	}
	return out
}

func paragraphsOf(el *etree.Element) []*Paragraph {
	var out []*Paragraph
	for _, p := range blockChildren(el, "p") {
		out = append(out, NewParagraph(p))
	}
	return out
}

func tablesOf(el *etree.Element) []*Table {
	var out []*Table
	for _, t := range blockChildren(el, "tbl") {
		out = append(out, NewTable(t))
	}
	return out
}
