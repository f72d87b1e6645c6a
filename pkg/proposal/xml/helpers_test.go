package xml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
	` xmlns:wpg="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"` +
	` xmlns:v="urn:schemas-microsoft-com:vml"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><w:body>`

const documentClose = `<w:sectPr/></w:body></w:document>`

func parseBody(t *testing.T, body string) *Part {
	t.Helper()
	part, err := ParsePart(MainPartName, []byte(documentOpen+body+documentClose))
	require.NoError(t, err)
	return part
}

func textBoxShape(frame, paragraphs string) string {
	return `<w:r><w:drawing><wp:` + frame + `><a:graphic><a:graphicData uri="http://schemas.microsoft.com/office/word/2010/wordprocessingShape">` +
		`<wps:wsp><wps:txbx><w:txbxContent>` + paragraphs + `</w:txbxContent></wps:txbx></wps:wsp>` +
		`</a:graphicData></a:graphic></wp:` + frame + `></w:drawing></w:r>`
}

func paragraphTexts(paras []*Paragraph) []string {
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		out = append(out, p.Text())
	}
	return out
}
