package proposal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/resolve"
	pxml "github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// Template is a loaded DOCX template. It is immutable: every render parses
// a fresh copy of its parts, so one Template may be rendered concurrently.
type Template struct {
	name     string
	source   []byte
	reader   *DocxReader
	parts    []string
	resolver *resolve.Resolver
	modTime  time.Time
}

func prepare(r io.Reader, name string, withHeadersFooters bool, resolver *resolve.Resolver) (*Template, error) {
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return nil, NewDocumentError("read", name, err)
	}
	source := buf.Bytes()

	docxReader, err := NewDocxReader(bytes.NewReader(source), size)
	if err != nil {
		return nil, NewDocumentError("parse", name, err)
	}

	t := &Template{
		name:     name,
		source:   source,
		reader:   docxReader,
		parts:    docxReader.TextParts(withHeadersFooters),
		resolver: resolver,
	}
	// Fail at load time rather than on the first render.
	if _, err := t.Document(); err != nil {
		return nil, err
	}
	return t, nil
}

// Name returns the path or name the template was loaded from.
func (t *Template) Name() string {
	return t.name
}

// Parts returns the names of the parts placeholders are resolved in.
func (t *Template) Parts() []string {
	return append([]string(nil), t.parts...)
}

// Source returns the template's DOCX bytes. The caller must not modify them.
func (t *Template) Source() []byte {
	return t.source
}

// Document parses a fresh copy of the template's text parts.
func (t *Template) Document() (*pxml.Document, error) {
	return t.reader.ReadDocument(t.parts)
}

// Render resolves tokens in a fresh copy of the template in a single pass
// and packages the result as DOCX.
func (t *Template) Render(tokens resolve.TokenMap) (*Rendered, error) {
	doc, err := t.Document()
	if err != nil {
		return nil, err
	}
	report, err := t.resolver.Resolve(doc, tokens)
	if err != nil {
		return nil, WithContext(err, "resolving placeholders", map[string]any{"template": t.name})
	}

	touched := make(map[string]bool)
	for _, r := range report.Regions {
		if r.Status == resolve.StatusMatched {
			touched[r.Location.Part] = true
		}
	}
	replaced := make(map[string][]byte, len(touched))
	for _, part := range doc.Parts() {
		if !touched[part.Name] {
			continue
		}
		data, err := part.Bytes()
		if err != nil {
			return nil, NewDocumentError("serialize", part.Name, err)
		}
		replaced[part.Name] = data
	}

	var buf bytes.Buffer
	if err := t.reader.WritePackage(&buf, replaced); err != nil {
		return nil, NewDocumentError("write", t.name, err)
	}
	return &Rendered{data: buf.Bytes(), Report: report}, nil
}

// Rendered is a rendered DOCX document.
type Rendered struct {
	data   []byte
	Report *resolve.Report
}

// Bytes returns the DOCX content.
func (r *Rendered) Bytes() []byte {
	return r.data
}

// Reader returns a reader over the DOCX content.
func (r *Rendered) Reader() io.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the DOCX content to w.
func (r *Rendered) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Save writes the DOCX content to path.
func (r *Rendered) Save(path string) error {
	if err := os.WriteFile(path, r.data, 0o644); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}

func (r *Rendered) String() string {
	return fmt.Sprintf("docx (%d bytes, %s)", len(r.data), r.Report.Summary())
}
