package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

type fakeRun struct{ text string }

func (r *fakeRun) Text() string     { return r.text }
func (r *fakeRun) SetText(s string) { r.text = s }

type fakeRegion struct {
	kind Kind
	runs []*fakeRun
}

func newRegion(texts ...string) *fakeRegion {
	f := &fakeRegion{kind: KindBodyParagraph}
	for _, t := range texts {
		f.runs = append(f.runs, &fakeRun{text: t})
	}
	return f
}

func (f *fakeRegion) Kind() Kind         { return f.kind }
func (f *fakeRegion) Location() Location { return Location{Part: "test", Pass: 2} }

func (f *fakeRegion) Runs() []Run {
	out := make([]Run, len(f.runs))
	for i, r := range f.runs {
		out[i] = r
	}
	return out
}

func (f *fakeRegion) Text() string {
	return strings.Join(f.texts(), "")
}

func (f *fakeRegion) texts() []string {
	out := make([]string, len(f.runs))
	for i, r := range f.runs {
		out[i] = r.text
	}
	return out
}

const documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:v="urn:schemas-microsoft-com:vml"><w:body>`

func parseDocument(t *testing.T, body string) *xml.Document {
	t.Helper()
	part, err := xml.ParsePart(xml.MainPartName, []byte(documentOpen+body+`</w:body></w:document>`))
	require.NoError(t, err)
	return xml.NewDocument(part)
}

func para(runs ...string) string {
	return `<w:p>` + strings.Join(runs, "") + `</w:p>`
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func boldRun(text string) string {
	return `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func anchoredTextBox(paragraphs ...string) string {
	return `<w:r><w:drawing><wp:anchor><a:graphic><a:graphicData>` +
		`<wps:wsp><wps:txbx><w:txbxContent>` + strings.Join(paragraphs, "") + `</w:txbxContent></wps:txbx></wps:wsp>` +
		`</a:graphicData></a:graphic></wp:anchor></w:drawing></w:r>`
}

func cellTable(paragraphs ...string) string {
	return `<w:tbl><w:tr><w:tc>` + strings.Join(paragraphs, "") + `</w:tc></w:tr></w:tbl>`
}

// alternateTextBox is a floating text box as Word writes it: a DrawingML
// shape in mc:Choice and the same text as a VML shape in mc:Fallback.
func alternateTextBox(paragraphs ...string) string {
	content := `<w:txbxContent>` + strings.Join(paragraphs, "") + `</w:txbxContent>`
	return `<w:r><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:drawing><wp:anchor><a:graphic><a:graphicData>` +
		`<wps:wsp><wps:txbx>` + content + `</wps:txbx></wps:wsp>` +
		`</a:graphicData></a:graphic></wp:anchor></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:shape><v:textbox>` + content + `</v:textbox></v:shape></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>`
}
