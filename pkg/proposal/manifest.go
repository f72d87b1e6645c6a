package proposal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Manifest lists proposals to generate in one batch.
type Manifest struct {
	// Defaults apply to every proposal that does not set the field.
	Defaults  map[string]string `yaml:"defaults,omitempty"`
	Proposals []ManifestEntry   `yaml:"proposals"`
}

// ManifestEntry is one proposal of a manifest.
type ManifestEntry struct {
	Type   string            `yaml:"type"`
	Client string            `yaml:"client,omitempty"`
	Values map[string]string `yaml:"values"`
}

// Requests returns one request per entry with the defaults merged in.
func (m *Manifest) Requests() []Request {
	reqs := make([]Request, 0, len(m.Proposals))
	for _, e := range m.Proposals {
		values := make(map[string]string, len(m.Defaults)+len(e.Values))
		for k, v := range m.Defaults {
			values[k] = v
		}
		for k, v := range e.Values {
			values[k] = v
		}
		reqs = append(reqs, Request{Type: e.Type, ClientName: e.Client, Values: values})
	}
	return reqs
}

func (m *Manifest) validate() error {
	verr := &ValidationError{}
	if len(m.Proposals) == 0 {
		verr.Add("proposals", "manifest lists no proposals")
	}
	for i, e := range m.Proposals {
		if strings.TrimSpace(e.Type) == "" {
			verr.Add(fmt.Sprintf("proposals[%d].type", i), "is required")
		}
	}
	return verr.Err()
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads a manifest from a YAML or XLSX file, chosen by
// extension.
func LoadManifest(path string) (*Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadManifestXLSX(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// LoadManifestXLSX reads a manifest from the first sheet of a spreadsheet.
func LoadManifestXLSX(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return ReadManifestXLSX(f)
}

// ReadManifestXLSX reads a spreadsheet manifest. The first row holds field
// names; a "type" column selects the proposal type and an optional "client"
// column names the output file. Blank rows are skipped, as are empty cells.
func ReadManifestXLSX(r io.Reader) (*Manifest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := make([]string, len(rows[0]))
	typeCol := -1
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		if strings.EqualFold(header[i], "type") {
			typeCol = i
		}
	}
	if typeCol < 0 {
		return nil, fmt.Errorf("sheet %q has no type column", sheets[0])
	}

	m := &Manifest{}
	for _, row := range rows[1:] {
		entry := ManifestEntry{Values: make(map[string]string)}
		blank := true
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			blank = false
			switch {
			case i == typeCol:
				entry.Type = cell
			case strings.EqualFold(header[i], "client"):
				entry.Client = cell
			default:
				entry.Values[header[i]] = cell
			}
		}
		if !blank {
			m.Proposals = append(m.Proposals, entry)
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}
