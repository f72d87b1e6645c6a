package proposal

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/resolve"
)

//go:embed schemas/*.yaml
var builtinSchemas embed.FS

// ErrUnknownType is returned for a proposal type no schema describes.
var ErrUnknownType = errors.New("unknown proposal type")

// FieldKind is the input kind of a schema field.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindMultiline FieldKind = "multiline"
	KindEmail     FieldKind = "email"
	KindPhone     FieldKind = "phone"
	KindDate      FieldKind = "date"
	KindCurrency  FieldKind = "currency"
)

// Field is one user-supplied value of a proposal. Its token is the field
// name in braces.
type Field struct {
	Name     string    `yaml:"name"`
	Label    string    `yaml:"label"`
	Kind     FieldKind `yaml:"kind"`
	Required bool      `yaml:"required,omitempty"`
	// Default applies when no value is given. Date fields accept "today"
	// and "<field>+<N>d".
	Default string `yaml:"default,omitempty"`
	// NotBefore names an earlier date field this date may not precede.
	NotBefore string `yaml:"not_before,omitempty"`
	Help      string `yaml:"help,omitempty"`
}

// Token returns the placeholder the field fills.
func (f *Field) Token() string {
	return resolve.Token(f.Name)
}

// Computed is an amount derived from currency fields: the sum of Sum, or
// Of multiplied by Rate.
type Computed struct {
	Name     string   `yaml:"name"`
	Sum      []string `yaml:"sum,omitempty"`
	Of       string   `yaml:"of,omitempty"`
	Rate     float64  `yaml:"rate,omitempty"`
	Internal bool     `yaml:"internal,omitempty"`
}

// Token returns the placeholder the computed amount fills.
func (c *Computed) Token() string {
	return resolve.Token(c.Name)
}

// Schema describes a proposal type: its template and the values that fill it.
type Schema struct {
	Name        string     `yaml:"name"`
	Title       string     `yaml:"title"`
	Aliases     []string   `yaml:"aliases,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Version     int        `yaml:"version"`
	Template    string     `yaml:"template"`
	Fields      []Field    `yaml:"fields"`
	Computed    []Computed `yaml:"computed,omitempty"`
}

// ParseSchema decodes and validates a YAML schema.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchemaFile reads a YAML schema from path.
func LoadSchemaFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the schema is self-consistent and fills in default kinds,
// labels and title.
func (s *Schema) Validate() error {
	verr := &ValidationError{}
	if s.Name == "" {
		verr.Add("name", "is required")
	}
	if s.Title == "" {
		s.Title = s.Name
	}
	if s.Template == "" {
		verr.Add("template", "is required")
	}

	kinds := make(map[string]FieldKind)
	for i := range s.Fields {
		f := &s.Fields[i]
		switch {
		case f.Name == "":
			verr.Add(fmt.Sprintf("fields[%d]", i), "name is required")
			continue
		case !resolve.ValidToken(f.Token()):
			verr.Add(f.Name, "is not usable as a token name")
		case kinds[f.Name] != "":
			verr.Add(f.Name, "is defined twice")
		}
		switch f.Kind {
		case "":
			f.Kind = KindText
		case KindText, KindMultiline, KindEmail, KindPhone, KindDate, KindCurrency:
		default:
			verr.Add(f.Name, "unknown kind %q", f.Kind)
		}
		if f.Label == "" {
			f.Label = f.Name
		}
		if f.NotBefore != "" && kinds[f.NotBefore] != KindDate {
			verr.Add(f.Name, "not_before must name an earlier date field")
		}
		kinds[f.Name] = f.Kind
	}

	for _, c := range s.Computed {
		if c.Name == "" || kinds[c.Name] != "" {
			verr.Add("computed", "%q needs a unique name", c.Name)
			continue
		}
		operands := c.Sum
		if len(c.Sum) == 0 {
			operands = []string{c.Of}
		}
		if len(c.Sum) > 0 && c.Of != "" {
			verr.Add(c.Name, "sets both sum and of")
		}
		for _, op := range operands {
			if kinds[op] != KindCurrency {
				verr.Add(c.Name, "operand %q is not an earlier currency value", op)
			}
		}
		kinds[c.Name] = KindCurrency
	}
	return verr.Err()
}

// Field returns the field called name, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// TokenNames returns every token the schema fills, sorted.
func (s *Schema) TokenNames() []string {
	var out []string
	for i := range s.Fields {
		out = append(out, s.Fields[i].Token())
	}
	for i := range s.Computed {
		if !s.Computed[i].Internal {
			out = append(out, s.Computed[i].Token())
		}
	}
	sort.Strings(out)
	return out
}

// Tokens turns raw input values, keyed by field name, into the token map for
// the template. Defaults fill missing values, computed amounts are derived,
// and every problem is reported in one *ValidationError.
func (s *Schema) Tokens(values map[string]string, now time.Time) (resolve.TokenMap, error) {
	verr := &ValidationError{}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s.Field(name) == nil {
			verr.Add(name, "is not a field of %s", s.Title)
		}
	}

	tokens := make(resolve.TokenMap, len(s.Fields)+len(s.Computed))
	amounts := make(map[string]float64)
	dates := make(map[string]time.Time)
	for i := range s.Fields {
		f := &s.Fields[i]
		raw := strings.TrimSpace(values[f.Name])
		if raw == "" {
			raw = f.Default
		}
		if raw == "" {
			if f.Required {
				verr.Add(f.Name, "is required")
			}
			tokens[f.Token()] = ""
			continue
		}

		switch f.Kind {
		case KindCurrency:
			v, err := ParseAmount(raw)
			if err != nil {
				verr.Add(f.Name, "%v", err)
				continue
			}
			tv, err := currencyValue(f.Token(), v)
			if err != nil {
				verr.Add(f.Name, "%v", err)
				continue
			}
			amounts[f.Name] = v
			tokens[f.Token()] = tv
		case KindDate:
			d, err := parseDateValue(raw, dates, now)
			if err != nil {
				verr.Add(f.Name, "%v", err)
				continue
			}
			if f.NotBefore != "" {
				if floor, ok := dates[f.NotBefore]; ok && d.Before(floor) {
					verr.Add(f.Name, "must not be before %s", f.NotBefore)
				}
			}
			dates[f.Name] = d
			tokens[f.Token()] = d.Format(resolve.DateLayout)
		case KindEmail:
			if _, err := mail.ParseAddress(raw); err != nil {
				verr.Add(f.Name, "is not a valid email address")
			}
			tokens[f.Token()] = raw
		default:
			tokens[f.Token()] = raw
		}
	}

	for i := range s.Computed {
		c := &s.Computed[i]
		var v float64
		if len(c.Sum) > 0 {
			for _, op := range c.Sum {
				v += amounts[op]
			}
		} else {
			v = amounts[c.Of] * c.Rate
		}
		amounts[c.Name] = v
		tv, err := currencyValue(c.Token(), v)
		if err != nil {
			verr.Add(c.Name, "%v", err)
			continue
		}
		if !c.Internal {
			tokens[c.Token()] = tv
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// currencyValue leaves amounts for currency-flagged tokens to the resolver
// and formats the rest here. Both are checked against the currency range.
func currencyValue(token string, v float64) (any, error) {
	formatted, err := resolve.FormatCurrency(v)
	if err != nil {
		return nil, err
	}
	if resolve.IsCurrencyToken(token) {
		return v, nil
	}
	return formatted, nil
}

// ParseAmount parses a non-negative amount of at most resolve.MaxAmount,
// accepting a leading "$" and thousands separators.
func ParseAmount(raw string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not an amount", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	if v > resolve.MaxAmount {
		return 0, fmt.Errorf("%q exceeds the largest supported amount", raw)
	}
	return v, nil
}

var relativeDate = regexp.MustCompile(`^(\w+)\s*\+\s*(\d+)d$`)

var dateLayouts = []string{"2006-01-02", resolve.DateLayout, "2/1/2006"}

// ParseDate parses a date in ISO or day/month/year form.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date (use YYYY-MM-DD or DD/MM/YYYY)", raw)
}

func parseDateValue(raw string, earlier map[string]time.Time, now time.Time) (time.Time, error) {
	if raw == "today" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if m := relativeDate.FindStringSubmatch(raw); m != nil {
		base, ok := earlier[m[1]]
		if !ok {
			return time.Time{}, fmt.Errorf("default refers to unknown date %q", m[1])
		}
		days, _ := strconv.Atoi(m[2])
		return base.AddDate(0, 0, days), nil
	}
	return ParseDate(raw)
}

// Registry holds the known proposal schemas.
type Registry struct {
	schemas map[string]*Schema
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// LoadSchemas returns a registry of the built-in schemas.
func LoadSchemas() (*Registry, error) {
	r := NewRegistry()
	err := fs.WalkDir(builtinSchemas, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := builtinSchemas.ReadFile(path)
		if err != nil {
			return err
		}
		s, err := ParseSchema(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		r.Add(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// LoadDir adds every *.yaml or *.yml schema in dir, replacing schemas of the
// same name.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read schema directory: %w", err)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		s, err := LoadSchemaFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		r.Add(s)
	}
	return nil
}

// Add registers s, replacing a schema with the same name.
func (r *Registry) Add(s *Schema) {
	if _, ok := r.schemas[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.schemas[s.Name] = s
}

// Get finds a schema by name, title or alias, ignoring case.
func (r *Registry) Get(name string) (*Schema, error) {
	if s, ok := r.schemas[name]; ok {
		return s, nil
	}
	for _, key := range r.order {
		s := r.schemas[key]
		if strings.EqualFold(s.Name, name) || strings.EqualFold(s.Title, name) {
			return s, nil
		}
		for _, alias := range s.Aliases {
			if strings.EqualFold(alias, name) {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownType, name, strings.Join(r.Names(), ", "))
}

// Names returns the schema names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns the schemas in registration order.
func (r *Registry) All() []*Schema {
	out := make([]*Schema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.schemas[name])
	}
	return out
}
