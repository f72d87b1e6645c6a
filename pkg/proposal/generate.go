package proposal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal/resolve"
)

// Format is the file format of a generated proposal.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MIME types of the generated files.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Request asks for one proposal.
type Request struct {
	// Type is a schema name, title or alias.
	Type string
	// ClientName names the output file. Defaults to Values["client_name"].
	ClientName string
	// Values holds raw input keyed by field name.
	Values map[string]string
	// Tokens are extra placeholders applied on top of the schema's tokens.
	Tokens resolve.TokenMap
}

// Result is a generated proposal.
type Result struct {
	ID       string
	Type     string
	FileName string
	MIMEType string
	Format   Format
	Data     []byte
	Report   *resolve.Report
	// Pages is the page count of a verified PDF.
	Pages int
	// Fallback is the conversion error that made the result a DOCX.
	Fallback error
}

// Save writes the result into dir and returns the file path.
func (r *Result) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", NewDocumentError("save", dir, err)
	}
	path := filepath.Join(dir, r.FileName)
	if err := os.WriteFile(path, r.Data, 0o644); err != nil {
		return "", NewDocumentError("save", path, err)
	}
	return path, nil
}

// Generator turns requests into finished proposal files.
type Generator struct {
	engine    *Engine
	registry  *Registry
	converter Converter
	verify    func(path string) (int, error)
	now       func() time.Time
	logger    *Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithConverter replaces the converter chosen from the configuration.
func WithConverter(c Converter) GeneratorOption {
	return func(g *Generator) { g.converter = c }
}

// WithRegistry replaces the built-in schema registry.
func WithRegistry(r *Registry) GeneratorOption {
	return func(g *Generator) { g.registry = r }
}

// WithEngine replaces the engine built from the configuration.
func WithEngine(e *Engine) GeneratorOption {
	return func(g *Generator) { g.engine = e }
}

// WithVerifier replaces the PDF check run after conversion. nil disables it.
func WithVerifier(verify func(path string) (int, error)) GeneratorOption {
	return func(g *Generator) { g.verify = verify }
}

// WithClock sets the clock used for "today" defaults.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// WithGeneratorLogger sets the generator's logger.
func WithGeneratorLogger(l *Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator creates a generator from cfg. Schemas from cfg.SchemaDir
// override the built-in ones.
func NewGenerator(cfg *Config, opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		converter: NewConverter(cfg),
		now:       time.Now,
		logger:    GetLogger(),
	}
	if cfg.VerifyPDF {
		g.verify = VerifyPDF
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.engine == nil {
		g.engine = NewWithOptions(cfg, WithLogger(g.logger))
	}
	if g.registry == nil {
		registry, err := LoadSchemas()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in schemas: %w", err)
		}
		if cfg.SchemaDir != "" {
			if err := registry.LoadDir(cfg.SchemaDir); err != nil {
				return nil, err
			}
		}
		g.registry = registry
	}
	return g, nil
}

// Registry returns the generator's schemas.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Engine returns the generator's template engine.
func (g *Generator) Engine() *Engine {
	return g.engine
}

// Converter returns the generator's PDF converter.
func (g *Generator) Converter() Converter {
	return g.converter
}

// TemplatePath returns where the template of s is loaded from.
func (g *Generator) TemplatePath(s *Schema) string {
	if filepath.IsAbs(s.Template) {
		return s.Template
	}
	return filepath.Join(g.engine.Config().TemplateDir, s.Template)
}

// Render fills the template of req's type and returns the DOCX without
// converting it.
func (g *Generator) Render(req Request) (*Schema, *Rendered, error) {
	schema, err := g.registry.Get(req.Type)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := schema.Tokens(req.Values, g.now())
	if err != nil {
		return nil, nil, err
	}
	for k, v := range req.Tokens {
		tokens[k] = v
	}

	tmpl, err := g.engine.PrepareFile(g.TemplatePath(schema))
	if err != nil {
		return nil, nil, err
	}
	rendered, err := tmpl.Render(tokens)
	if err != nil {
		return nil, nil, err
	}

	report := rendered.Report
	log := g.logger.WithFields(Fields{"type": schema.Name, "template": schema.Template})
	log.Info("%s", report.Summary())
	for _, r := range report.Skipped() {
		log.Warn("skipped unsupported shape at %s: %s", r.Location, r.Reason)
	}
	if unmatched := report.Unmatched(); len(unmatched) > 0 {
		log.Debug("tokens not found in template: %s", strings.Join(unmatched, ", "))
	}
	return schema, rendered, nil
}

// Generate renders req and converts it to PDF. When conversion fails the
// result is the DOCX, with the reason in Result.Fallback. Temporary files
// are removed before returning.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	schema, rendered, err := g.Render(req)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	dir, err := os.MkdirTemp("", "proposal-"+id[:8]+"-")
	if err != nil {
		return nil, NewDocumentError("create temp dir", "", err)
	}
	defer os.RemoveAll(dir)

	client := req.ClientName
	if client == "" {
		client = req.Values["client_name"]
	}
	base := FileBaseName(schema.Title, client)
	docxPath := filepath.Join(dir, base+".docx")
	if err := rendered.Save(docxPath); err != nil {
		return nil, err
	}

	result := &Result{ID: id, Type: schema.Name, Report: rendered.Report}
	pdfPath := filepath.Join(dir, base+".pdf")
	pages, convErr := g.toPDF(ctx, docxPath, pdfPath)
	if convErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.WithField("id", id).Warn("PDF conversion failed, providing DOCX instead: %v", convErr)
		result.FileName = base + ".docx"
		result.MIMEType = MIMETypeDOCX
		result.Format = FormatDOCX
		result.Data = rendered.Bytes()
		result.Fallback = convErr
		return result, nil
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, NewDocumentError("read", pdfPath, err)
	}
	result.FileName = base + ".pdf"
	result.MIMEType = MIMETypePDF
	result.Format = FormatPDF
	result.Data = data
	result.Pages = pages
	g.logger.WithFields(Fields{"id": id, "pages": pages}).Info("generated %s", result.FileName)
	return result, nil
}

func (g *Generator) toPDF(ctx context.Context, in, out string) (int, error) {
	if timeout := g.engine.Config().ConvertTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := g.converter.Convert(ctx, in, out); err != nil {
		return 0, err
	}
	if g.verify == nil {
		return 0, nil
	}
	pages, err := g.verify(out)
	if err != nil {
		return 0, &ConversionError{Backend: g.converter.Name(), Input: in, Cause: fmt.Errorf("output is not a valid PDF: %w", err)}
	}
	return pages, nil
}

var fileNameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// FileBaseName returns "<title>_<client>" with characters that are not
// allowed in file names replaced.
func FileBaseName(title, client string) string {
	client = strings.TrimSpace(client)
	if client == "" {
		client = "client"
	}
	return fileNameReplacer.Replace(title + "_" + client)
}
