package proposal

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pxml "github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/xml"
)

// TokenLocation identifies where a placeholder sits in a DOCX package.
// Character offsets count runes of the paragraph text.
type TokenLocation struct {
	Part      string `json:"part"`
	Paragraph int    `json:"paragraph"`
	Run       int    `json:"run"`
	RunEnd    int    `json:"runEnd"`
	CharStart int    `json:"charStart"`
	CharEnd   int    `json:"charEnd"`
	Ordinal   int    `json:"ordinal"`
	AnchorID  string `json:"anchorId"`
}

// Split reports whether the token spans more than one run.
func (l TokenLocation) Split() bool {
	return l.RunEnd != l.Run
}

// TokenRef is one placeholder occurrence found in a template.
type TokenRef struct {
	Raw      string        `json:"raw"`
	Unclosed bool          `json:"unclosed,omitempty"`
	Location TokenLocation `json:"location"`
}

// Inspection lists the placeholders of a template.
type Inspection struct {
	Tokens       []TokenRef `json:"tokens"`
	DocumentHash string     `json:"documentHash"`
}

// Inspect scans every text-bearing part of a DOCX package, headers and
// footers included, for {placeholder} tokens. Tokens are found across run
// boundaries; a brace left open at the end of a paragraph is reported as
// unclosed.
func Inspect(docxBytes []byte) (*Inspection, error) {
	if len(docxBytes) == 0 {
		return nil, fmt.Errorf("docx bytes are required")
	}
	reader, err := NewDocxReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	doc, err := reader.ReadDocument(reader.TextParts(true))
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(docxBytes)
	ins := &Inspection{DocumentHash: "sha256:" + hex.EncodeToString(sum[:])}
	for _, part := range doc.Parts() {
		for i, p := range part.AllParagraphs() {
			ins.Tokens = append(ins.Tokens, scanParagraphTokens(part.Name, i, p, len(ins.Tokens))...)
		}
	}
	return ins, nil
}

type scanChar struct {
	r   rune
	run int
}

func scanParagraphTokens(part string, index int, p *pxml.Paragraph, ordinal int) []TokenRef {
	var chars []scanChar
	for i, run := range p.Runs() {
		for _, r := range run.Text() {
			chars = append(chars, scanChar{r: r, run: i})
		}
	}

	var refs []TokenRef
	emit := func(start, end int, unclosed bool) {
		raw := make([]rune, 0, end-start+1)
		for _, c := range chars[start : end+1] {
			raw = append(raw, c.r)
		}
		loc := TokenLocation{
			Part:      part,
			Paragraph: index,
			Run:       chars[start].run,
			RunEnd:    chars[end].run,
			CharStart: start,
			CharEnd:   end + 1,
			Ordinal:   ordinal + len(refs),
		}
		loc.AnchorID = anchorID(loc, string(raw))
		refs = append(refs, TokenRef{Raw: string(raw), Unclosed: unclosed, Location: loc})
	}

	open := -1
	for i, c := range chars {
		switch c.r {
		case '{':
			if open >= 0 {
				emit(open, i-1, true)
			}
			open = i
		case '}':
			if open >= 0 {
				emit(open, i, false)
				open = -1
			}
		}
	}
	if open >= 0 {
		emit(open, len(chars)-1, true)
	}
	return refs
}

func anchorID(loc TokenLocation, raw string) string {
	seed := strings.Join([]string{
		loc.Part,
		strconv.Itoa(loc.Paragraph),
		strconv.Itoa(loc.CharStart),
		strconv.Itoa(loc.CharEnd),
		raw,
	}, "|")
	sum := sha256.Sum256([]byte(seed))
	return "anchor_" + hex.EncodeToString(sum[:8])
}

// Names returns the distinct closed tokens, sorted.
func (ins *Inspection) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range ins.Tokens {
		if !t.Unclosed && !seen[t.Raw] {
			seen[t.Raw] = true
			out = append(out, t.Raw)
		}
	}
	sort.Strings(out)
	return out
}

// Unclosed returns the tokens missing their closing brace.
func (ins *Inspection) Unclosed() []TokenRef {
	var out []TokenRef
	for _, t := range ins.Tokens {
		if t.Unclosed {
			out = append(out, t)
		}
	}
	return out
}

// SchemaCheck compares a template's tokens with a schema.
type SchemaCheck struct {
	Schema string `json:"schema"`
	// Unknown tokens appear in the template but no value fills them.
	Unknown []string `json:"unknown,omitempty"`
	// Unused tokens are filled by the schema but absent from the template.
	Unused   []string   `json:"unused,omitempty"`
	Unclosed []TokenRef `json:"unclosed,omitempty"`
}

// OK reports whether the template and schema agree.
func (c SchemaCheck) OK() bool {
	return len(c.Unknown) == 0 && len(c.Unused) == 0 && len(c.Unclosed) == 0
}

// CheckAgainst compares the template's tokens with those s fills.
func (ins *Inspection) CheckAgainst(s *Schema) SchemaCheck {
	check := SchemaCheck{Schema: s.Name, Unclosed: ins.Unclosed()}
	filled := make(map[string]bool)
	for _, t := range s.TokenNames() {
		filled[t] = true
	}
	present := make(map[string]bool)
	for _, name := range ins.Names() {
		present[name] = true
		if !filled[name] {
			check.Unknown = append(check.Unknown, name)
		}
	}
	for _, t := range s.TokenNames() {
		if !present[t] {
			check.Unused = append(check.Unused, t)
		}
	}
	return check
}
