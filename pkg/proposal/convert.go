package proposal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Converter turns a DOCX file into a PDF file.
type Converter interface {
	Name() string
	Convert(ctx context.Context, input, output string) error
}

// runFunc runs an external command and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LibreOfficeConverter converts with a headless LibreOffice (soffice).
type LibreOfficeConverter struct {
	// Binary is the soffice executable; empty means search PATH for
	// soffice, then libreoffice.
	Binary string

	lookPath func(string) (string, error)
	run      runFunc
}

// NewLibreOfficeConverter returns a converter using binary, or the first
// soffice found on PATH when binary is empty.
func NewLibreOfficeConverter(binary string) *LibreOfficeConverter {
	return &LibreOfficeConverter{Binary: binary, lookPath: exec.LookPath, run: runCommand}
}

// Name returns "libreoffice".
func (c *LibreOfficeConverter) Name() string { return BackendLibreOffice }

func (c *LibreOfficeConverter) binary() (string, error) {
	candidates := []string{"soffice", "libreoffice"}
	if c.Binary != "" {
		candidates = []string{c.Binary}
	}
	for _, name := range candidates {
		if path, err := c.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found", ErrConversionUnavailable, strings.Join(candidates, " or "))
}

// Convert runs soffice --headless --convert-to pdf. LibreOffice names its
// output after the input, so the file is moved to output afterwards.
func (c *LibreOfficeConverter) Convert(ctx context.Context, input, output string) error {
	bin, err := c.binary()
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: err}
	}

	outDir, err := os.MkdirTemp(filepath.Dir(output), "soffice-")
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: err}
	}
	defer os.RemoveAll(outDir)

	out, err := c.run(ctx, bin, "--headless", "--norestore", "--convert-to", "pdf", "--outdir", outDir, input)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Output: string(out), Cause: ctxErr}
	}
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Output: string(out), Cause: err}
	}

	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Output: string(out), Cause: errors.New("no PDF was produced")}
	}
	if err := os.Rename(produced, output); err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: err}
	}
	return nil
}

// WordConverter converts through Microsoft Word automation. It is only
// available on Windows.
type WordConverter struct {
	goos string
	run  runFunc
}

// NewWordConverter returns a Word automation converter.
func NewWordConverter() *WordConverter {
	return &WordConverter{goos: runtime.GOOS, run: runCommand}
}

// Name returns "word".
func (c *WordConverter) Name() string { return BackendWord }

// wdFormatPDF is Word's SaveAs2 file format code for PDF.
const wdFormatPDF = 17

// Convert opens input in an invisible Word instance and saves it as PDF.
func (c *WordConverter) Convert(ctx context.Context, input, output string) error {
	if c.goos != "windows" {
		return &ConversionError{Backend: c.Name(), Input: input,
			Cause: fmt.Errorf("%w: Word automation requires Windows", ErrConversionUnavailable)}
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: err}
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: err}
	}

	script := fmt.Sprintf(`$ErrorActionPreference = 'Stop'
$word = New-Object -ComObject Word.Application
$word.Visible = $false
try {
  $doc = $word.Documents.Open(%s, $false, $true)
  $doc.SaveAs2(%s, %d)
  $doc.Close($false)
} finally {
  $word.Quit()
}`, psQuote(in), psQuote(out), wdFormatPDF)

	combined, err := c.run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Output: string(combined), Cause: ctxErr}
	}
	if err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Output: string(combined), Cause: err}
	}
	if _, err := os.Stat(out); err != nil {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: errors.New("no PDF was produced")}
	}
	return nil
}

// psQuote quotes s as a PowerShell single-quoted string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ChainConverter tries each converter in turn until one succeeds.
type ChainConverter []Converter

// Name joins the names of the chained converters.
func (c ChainConverter) Name() string {
	names := make([]string, len(c))
	for i, conv := range c {
		names[i] = conv.Name()
	}
	return strings.Join(names, "+")
}

// Convert returns nil on the first success, or every failure otherwise.
func (c ChainConverter) Convert(ctx context.Context, input, output string) error {
	errs := NewMultiError()
	for _, conv := range c {
		err := conv.Convert(ctx, input, output)
		if err == nil {
			return nil
		}
		errs.Add(err)
		if ctx.Err() != nil {
			break
		}
	}
	if errs.Len() == 0 {
		return &ConversionError{Backend: c.Name(), Input: input, Cause: ErrConversionUnavailable}
	}
	return errs.Err()
}

// NoConverter never converts; generation always falls back to DOCX.
type NoConverter struct{}

// Name returns "none".
func (NoConverter) Name() string { return BackendNone }

// Convert always fails with ErrConversionUnavailable.
func (NoConverter) Convert(_ context.Context, input, _ string) error {
	return &ConversionError{Backend: BackendNone, Input: input, Cause: ErrConversionUnavailable}
}

// NewConverter builds the converter selected by cfg.PDFBackend. "auto"
// prefers Word on Windows and LibreOffice everywhere.
func NewConverter(cfg *Config) Converter {
	switch cfg.PDFBackend {
	case BackendNone:
		return NoConverter{}
	case BackendLibreOffice:
		return NewLibreOfficeConverter(cfg.SofficePath)
	case BackendWord:
		return NewWordConverter()
	}
	if runtime.GOOS == "windows" {
		return ChainConverter{NewWordConverter(), NewLibreOfficeConverter(cfg.SofficePath)}
	}
	return NewLibreOfficeConverter(cfg.SofficePath)
}

// VerifyPDF parses the PDF at path and returns its page count.
func VerifyPDF(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to ensure page count: %w", err)
	}
	if ctx.PageCount == 0 {
		return 0, errors.New("PDF has no pages")
	}
	return ctx.PageCount, nil
}
