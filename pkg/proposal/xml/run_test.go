package xml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunText(t *testing.T) {
	tests := []struct {
		name string
		run  string
		want string
	}{
		{"plain", `<w:r><w:t>Hello</w:t></w:r>`, "Hello"},
		{"several text elements", `<w:r><w:t>Hel</w:t><w:t>lo</w:t></w:r>`, "Hello"},
		{"tab", `<w:r><w:t>a</w:t><w:tab/><w:t>b</w:t></w:r>`, "a\tb"},
		{"line break", `<w:r><w:t>a</w:t><w:br/><w:t>b</w:t></w:r>`, "a\nb"},
		{"page break", `<w:r><w:t>a</w:t><w:br w:type="page"/><w:t>b</w:t></w:r>`, "ab"},
		{"properties ignored", `<w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>`, "bold"},
		{"empty", `<w:r><w:rPr><w:b/></w:rPr></w:r>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := parseBody(t, `<w:p>`+tt.run+`</w:p>`)
			runs := part.Paragraphs()[0].Runs()
			require.Len(t, runs, 1)
			assert.Equal(t, tt.want, runs[0].Text())
		})
	}
}

func TestRunSetText(t *testing.T) {
	t.Run("keeps properties", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>{name}</w:t></w:r></w:p>`)
		run := part.Paragraphs()[0].Runs()[0]
		run.SetText("Acme Ltd")

		assert.Equal(t, "Acme Ltd", run.Text())
		require.NotNil(t, run.Properties())
		assert.Equal(t, "rPr", run.Element().ChildElements()[0].Tag)
	})

	t.Run("preserves surrounding whitespace", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
		run := part.Paragraphs()[0].Runs()[0]
		run.SetText(" due ")

		data, err := part.Bytes()
		require.NoError(t, err)
		assert.Contains(t, string(data), `<w:t xml:space="preserve"> due </w:t>`)
	})

	t.Run("writes tabs and breaks", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
		run := part.Paragraphs()[0].Runs()[0]
		run.SetText("a\tb\nc")

		assert.Equal(t, "a\tb\nc", run.Text())
		var tags []string
		for _, c := range run.Element().ChildElements() {
			tags = append(tags, c.Tag)
		}
		assert.Equal(t, []string{"t", "tab", "t", "br", "t"}, tags)
	})

	t.Run("keeps drawings in place", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:t>{logo}</w:t><w:drawing/><w:t>after</w:t></w:r></w:p>`)
		run := part.Paragraphs()[0].Runs()[0]
		run.SetText("")

		assert.Equal(t, "", run.Text())
		children := run.Element().ChildElements()
		require.Len(t, children, 1)
		assert.Equal(t, "drawing", children[0].Tag)
	})

	t.Run("clearing leaves no text elements", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:t>gone</w:t></w:r></w:p>`)
		run := part.Paragraphs()[0].Runs()[0]
		run.SetText("")

		data, err := part.Bytes()
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "gone"))
	})

	t.Run("escapes markup characters", func(t *testing.T) {
		part := parseBody(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
		part.Paragraphs()[0].Runs()[0].SetText("R&D <team>")

		data, err := part.Bytes()
		require.NoError(t, err)
		reparsed, err := ParsePart(MainPartName, data)
		require.NoError(t, err)
		assert.Equal(t, "R&D <team>", reparsed.Paragraphs()[0].Text())
	})
}
