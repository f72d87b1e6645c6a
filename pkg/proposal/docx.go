package proposal

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	pxml "github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// DocxReader indexes the parts of a DOCX package held in memory.
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File, len(zipReader.File)),
	}
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[pxml.MainPartName]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", pxml.MainPartName)
	}
	return dr, nil
}

// DocxReaderFromFile creates a DocxReader from a file path
func DocxReaderFromFile(path string) (*DocxReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewDocxReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}
	return content, nil
}

// GetRelationships retrieves relationships for a given part. A part without
// a relationships file has none.
func (dr *DocxReader) GetRelationships(partName string) ([]Relationship, error) {
	dir, base := "", partName
	if idx := strings.LastIndex(partName, "/"); idx != -1 {
		dir, base = partName[:idx], partName[idx+1:]
	}
	relPath := "_rels/" + base + ".rels"
	if dir != "" {
		relPath = dir + "/" + relPath
	}

	if _, ok := dr.Parts[relPath]; !ok {
		return []Relationship{}, nil
	}
	content, err := dr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// ListParts returns the names of all parts, sorted.
func (dr *DocxReader) ListParts() []string {
	parts := make([]string, 0, len(dr.Parts))
	for name := range dr.Parts {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

// TextParts returns the text-bearing parts in processing order: the main
// document, then headers and footers when withHeadersFooters is set.
func (dr *DocxReader) TextParts(withHeadersFooters bool) []string {
	names := []string{pxml.MainPartName}
	if !withHeadersFooters {
		return names
	}
	var headers, footers []string
	for name := range dr.Parts {
		kind, ok := pxml.KindOf(name)
		switch {
		case !ok:
		case kind == pxml.PartHeader:
			headers = append(headers, name)
		case kind == pxml.PartFooter:
			footers = append(footers, name)
		}
	}
	sortPartNames(headers)
	sortPartNames(footers)
	return append(append(names, headers...), footers...)
}

// sortPartNames orders header1.xml before header10.xml.
func sortPartNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
}

// ReadDocument parses the given text parts into a document.
func (dr *DocxReader) ReadDocument(partNames []string) (*pxml.Document, error) {
	parts := make([]*pxml.Part, 0, len(partNames))
	for _, name := range partNames {
		data, err := dr.GetPart(name)
		if err != nil {
			return nil, NewDocumentError("extract", name, err)
		}
		part, err := pxml.ParsePart(name, data)
		if err != nil {
			return nil, NewDocumentError("parse", name, err)
		}
		parts = append(parts, part)
	}
	return pxml.NewDocument(parts...), nil
}

// WritePackage writes a copy of the package to w, replacing the content of
// the parts named in replaced. Entries keep their order; untouched entries
// are copied without recompression.
func (dr *DocxReader) WritePackage(w io.Writer, replaced map[string][]byte) error {
	zw := zip.NewWriter(w)
	for _, file := range dr.reader.File {
		content, ok := replaced[file.Name]
		if !ok {
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}
		header := &zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}
