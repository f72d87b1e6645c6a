package xml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		kind   PartKind
		isText bool
	}{
		{"word/document.xml", PartMain, true},
		{"word/header1.xml", PartHeader, true},
		{"word/footer12.xml", PartFooter, true},
		{"word/styles.xml", 0, false},
		{"word/headerX.xml", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.name)
			assert.Equal(t, tt.isText, ok)
			if ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestParsePartErrors(t *testing.T) {
	_, err := ParsePart("word/styles.xml", []byte(`<w:styles/>`))
	assert.Error(t, err)

	_, err = ParsePart(MainPartName, []byte(`<w:document`))
	assert.Error(t, err)

	_, err = ParsePart(MainPartName, []byte(`<w:document xmlns:w="`+NamespaceWordML+`"/>`))
	assert.ErrorContains(t, err, "w:body")
}

func TestPartParagraphs(t *testing.T) {
	part := parseBody(t,
		`<w:p><w:r><w:t>first</w:t></w:r></w:p>`+
			`<w:sdt><w:sdtContent><w:p><w:r><w:t>controlled</w:t></w:r></w:p></w:sdtContent></w:sdt>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
			`<w:p><w:hyperlink><w:r><w:t>link</w:t></w:r></w:hyperlink><w:r><w:t> text</w:t></w:r></w:p>`)

	assert.Equal(t, []string{"first", "controlled", "link text"}, paragraphTexts(part.Paragraphs()))
	assert.Equal(t, []string{"first", "controlled", "cell", "link text"}, paragraphTexts(part.AllParagraphs()))
}

func TestParagraphRunsExcludeTextBoxContent(t *testing.T) {
	part := parseBody(t, `<w:p><w:r><w:t>outer</w:t></w:r>`+
		textBoxShape("anchor", `<w:p><w:r><w:t>inner</w:t></w:r></w:p>`)+`</w:p>`)

	paras := part.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "outer", paras[0].Text())
	assert.Equal(t, []string{"inner"}, paragraphTexts(part.TextBoxParagraphs()))
	assert.Equal(t, []string{"inner"}, paragraphTexts(part.AnchoredTextBoxParagraphs()))
}

func TestAnchoredTextBoxParagraphsSkipInline(t *testing.T) {
	part := parseBody(t, `<w:p>`+
		textBoxShape("inline", `<w:p><w:r><w:t>inline box</w:t></w:r></w:p>`)+
		textBoxShape("anchor", `<w:p><w:r><w:t>floating box</w:t></w:r></w:p>`)+`</w:p>`)

	assert.Equal(t, []string{"inline box", "floating box"}, paragraphTexts(part.TextBoxParagraphs()))
	assert.Equal(t, []string{"floating box"}, paragraphTexts(part.AnchoredTextBoxParagraphs()))
}

func TestTables(t *testing.T) {
	part := parseBody(t, `<w:tbl>`+
		`<w:tr><w:tc><w:p><w:r><w:t>a1</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b1</w:t></w:r></w:p></w:tc></w:tr>`+
		`<w:tr><w:tc><w:tbl><w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr></w:tbl><w:p/></w:tc></w:tr>`+
		`</w:tbl>`)

	tables := part.Tables()
	require.Len(t, tables, 1)
	rows := tables[0].Rows()
	require.Len(t, rows, 2)

	cells := rows[0].Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"b1"}, paragraphTexts(cells[1].Paragraphs()))

	nested := rows[1].Cells()[0].Tables()
	require.Len(t, nested, 1)
	assert.Equal(t, []string{"nested"}, paragraphTexts(nested[0].Rows()[0].Cells()[0].Paragraphs()))
}

func TestPartRoundTripKeepsUnknownMarkup(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Proposal</w:t></w:r>` +
		`<w:bookmarkStart w:id="0" w:name="top"/><w:bookmarkEnd w:id="0"/></w:p>`
	part := parseBody(t, body)

	data, err := part.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<w:bookmarkStart w:id="0" w:name="top"/>`)
	assert.Contains(t, string(data), `<w:sectPr/>`)
	assert.Equal(t, "Title", part.Paragraphs()[0].Style())
}

func TestHeaderPartBody(t *testing.T) {
	part, err := ParsePart("word/header1.xml", []byte(
		`<w:hdr xmlns:w="`+NamespaceWordML+`"><w:p><w:r><w:t>{client_name}</w:t></w:r></w:p></w:hdr>`))
	require.NoError(t, err)

	assert.Equal(t, PartHeader, part.Kind)
	assert.Equal(t, []string{"{client_name}"}, paragraphTexts(part.Paragraphs()))
}

func TestNewDocumentOrdersParts(t *testing.T) {
	header, err := ParsePart("word/header1.xml", []byte(`<w:hdr xmlns:w="`+NamespaceWordML+`"/>`))
	require.NoError(t, err)
	footer, err := ParsePart("word/footer1.xml", []byte(`<w:ftr xmlns:w="`+NamespaceWordML+`"/>`))
	require.NoError(t, err)
	main := parseBody(t, "")

	doc := NewDocument(footer, header, main)
	var names []string
	for _, p := range doc.Parts() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"word/document.xml", "word/header1.xml", "word/footer1.xml"}, names)
	assert.Same(t, main, doc.Main())
	assert.Same(t, header, doc.Part("word/header1.xml"))
	assert.Nil(t, doc.Part("word/header2.xml"))
}
