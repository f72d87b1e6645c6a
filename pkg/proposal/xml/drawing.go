package xml

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrUnsupportedShape reports a drawing whose structure cannot be followed
// down to its text content.
var ErrUnsupportedShape = errors.New("unsupported shape structure")

// Drawing is a floating or inline object: a DrawingML w:drawing or a legacy
// VML w:pict.
type Drawing struct {
	el *etree.Element
}

// TextBox is a w:txbxContent element together with how its shape is placed.
type TextBox struct {
	el       *etree.Element
	anchored bool
}

// Element returns the underlying w:drawing or w:pict element.
func (d *Drawing) Element() *etree.Element {
	return d.el
}

// IsVML reports whether the drawing is a legacy w:pict.
func (d *Drawing) IsVML() bool {
	return d.el.Tag == "pict"
}

// Anchored reports whether the drawing floats (wp:anchor) rather than sitting
// inline with text. VML shapes are treated as anchored.
func (d *Drawing) Anchored() bool {
	if d.IsVML() {
		return true
	}
	return child(d.el, NamespaceWordDrawing, "anchor") != nil
}

// TextBoxes follows the drawing's shape structure down to its text boxes.
// A picture or a shape without text yields no text boxes and no error; a
// structure that cannot be followed returns an error wrapping
// ErrUnsupportedShape.
func (d *Drawing) TextBoxes() ([]*TextBox, error) {
	if d.IsVML() {
		return d.vmlTextBoxes()
	}
	frame := child(d.el, NamespaceWordDrawing, "anchor")
	anchored := frame != nil
	if frame == nil {
		frame = child(d.el, NamespaceWordDrawing, "inline")
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: drawing has neither wp:inline nor wp:anchor", ErrUnsupportedShape)
	}
	graphic := child(frame, NamespaceDrawingML, "graphic")
	if graphic == nil {
		return nil, fmt.Errorf("%w: frame has no a:graphic", ErrUnsupportedShape)
	}
	data := child(graphic, NamespaceDrawingML, "graphicData")
	if data == nil {
		return nil, fmt.Errorf("%w: graphic has no a:graphicData", ErrUnsupportedShape)
	}

	var boxes []*TextBox
	for _, c := range data.ChildElements() {
		switch {
		case is(c, NamespacePicture, "pic"):
		case is(c, NamespaceWordShape, "wsp"):
			boxes = appendShapeText(boxes, c, anchored)
		case is(c, NamespaceWordGroup, "wgp"), is(c, NamespaceWordCanvas, "wpc"):
			boxes = appendGroupText(boxes, c, anchored)
		default:
			return nil, fmt.Errorf("%w: graphic data %s (%s)", ErrUnsupportedShape, c.FullTag(),
				data.SelectAttrValue("uri", "unknown uri"))
		}
	}
	return boxes, nil
}

func appendShapeText(boxes []*TextBox, wsp *etree.Element, anchored bool) []*TextBox {
	content := child(child(wsp, NamespaceWordShape, "txbx"), NamespaceWordML, "txbxContent")
	if content == nil {
		return boxes
	}
	return append(boxes, &TextBox{el: content, anchored: anchored})
}

func appendGroupText(boxes []*TextBox, group *etree.Element, anchored bool) []*TextBox {
	for _, c := range group.ChildElements() {
		switch {
		case is(c, NamespaceWordShape, "wsp"):
			boxes = appendShapeText(boxes, c, anchored)
		case is(c, NamespaceWordGroup, "grpSp"), is(c, NamespaceWordGroup, "wgp"):
			boxes = appendGroupText(boxes, c, anchored)
		}
	}
	return boxes
}

func (d *Drawing) vmlTextBoxes() ([]*TextBox, error) {
	var shapes int
	var boxes []*TextBox
	for _, c := range d.el.ChildElements() {
		if namespaceOf(c) != NamespaceVML {
			continue
		}
		shapes++
		for _, tb := range descendants(c, func(e *etree.Element) bool { return is(e, NamespaceVML, "textbox") }, false) {
			if content := child(tb, NamespaceWordML, "txbxContent"); content != nil {
				boxes = append(boxes, &TextBox{el: content, anchored: true})
			}
		}
	}
	if shapes == 0 {
		return nil, fmt.Errorf("%w: w:pict has no VML shape", ErrUnsupportedShape)
	}
	return boxes, nil
}

// Element returns the underlying w:txbxContent element.
func (tb *TextBox) Element() *etree.Element {
	return tb.el
}

// Anchored reports whether the text box belongs to a floating shape.
func (tb *TextBox) Anchored() bool {
	return tb.anchored
}

// Paragraphs returns every paragraph inside the text box, including those in
// tables it contains.
func (tb *TextBox) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range descendants(tb.el, func(e *etree.Element) bool { return isWord(e, "p") }, true) {
		out = append(out, NewParagraph(p))
	}
	return out
}
