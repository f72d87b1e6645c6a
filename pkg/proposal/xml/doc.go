// Package xml provides a lossless view of the WordprocessingML parts of a DOCX
// package.
//
// Each part (word/document.xml, headers, footers) is held as an etree tree, so
// everything the package does not understand (drawings, section properties,
// vendor extensions) is written back byte-for-byte in meaning. On top of the
// tree the package exposes thin typed handles for the elements a placeholder
// pass needs:
//
//   - document.go: Document and Part, the ownership roots of parsed parts
//   - paragraph.go: Paragraph, a w:p element and its ordered runs
//   - run.go: Run, a w:r element with Text and SetText
//   - table.go: Table, TableRow and TableCell
//   - drawing.go: Drawing and TextBox, the shape structures that anchor
//     floating text (DrawingML and VML)
//   - namespaces.go: namespace URIs and conventional prefixes
//
// # Runs
//
// A Run is the smallest span of text sharing one formatting (w:rPr). Word
// splits runs at arbitrary points (spell checking, revision ids, partial
// formatting), so a placeholder such as {client_name} can be spread over
// several runs. Run.Text maps w:tab to "\t" and line breaks to "\n";
// Run.SetText performs the inverse mapping and leaves non-text children such
// as drawings in place.
//
// Example:
//
//	part, err := xml.ParsePart("word/document.xml", data)
//	if err != nil {
//	    return err
//	}
//	for _, p := range part.Paragraphs() {
//	    fmt.Println(p.Text())
//	}
package xml
