package proposal

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDOCX(t *testing.T, data []byte) *DocxReader {
	t.Helper()
	r, err := NewDocxReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r
}

func TestNewDocxReaderRejects(t *testing.T) {
	_, err := NewDocxReader(bytes.NewReader([]byte("plain text")), 10)
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	_, err = NewDocxReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing word/document.xml")
}

func TestTextPartsOrder(t *testing.T) {
	footer := docxEntry{"word/footer1.xml", `<w:ftr ` + wordNamespace + `/>`}
	r := openDOCX(t, buildDOCX(t, para(),
		header("word/header10.xml", ""),
		header("word/header2.xml", ""),
		footer,
		header("word/header1.xml", ""),
	))

	assert.Equal(t, []string{
		"word/document.xml",
		"word/header1.xml",
		"word/header2.xml",
		"word/header10.xml",
		"word/footer1.xml",
	}, r.TextParts(true))
	assert.Equal(t, []string{"word/document.xml"}, r.TextParts(false))

	doc, err := r.ReadDocument(r.TextParts(true))
	require.NoError(t, err)
	assert.Len(t, doc.Parts(), 5)
}

func TestGetPartAndRelationships(t *testing.T) {
	r := openDOCX(t, buildDOCX(t, para(run("x"))))

	_, err := r.GetPart("word/missing.xml")
	assert.Error(t, err)

	// The package-level relationships live at _rels/.rels.
	rels, err := r.GetRelationships("")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "word/document.xml", rels[0].Target)

	rels, err = r.GetRelationships("word/document.xml")
	require.NoError(t, err)
	assert.Empty(t, rels)

	assert.Contains(t, r.ListParts(), "[Content_Types].xml")
}

func TestWritePackage(t *testing.T) {
	src := buildDOCX(t, para(run("old")))
	r := openDOCX(t, src)

	var buf bytes.Buffer
	replacement := []byte(`<w:document ` + wordNamespace + `><w:body/></w:document>`)
	require.NoError(t, r.WritePackage(&buf, map[string][]byte{"word/document.xml": replacement}))

	out := openDOCX(t, buf.Bytes())
	assert.Equal(t, r.ListParts(), out.ListParts())
	assert.Equal(t, string(replacement), partText(t, buf.Bytes(), "word/document.xml"))
	assert.Equal(t, partText(t, src, "word/styles.xml"), partText(t, buf.Bytes(), "word/styles.xml"))
}
