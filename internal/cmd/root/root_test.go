package root

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const contractDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t xml:space="preserve">Made on {date} with {client</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>_name}</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>{client_company_address}</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   contractDocument,
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(dir, "Contract Agreement.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// setup points the CLI at a temporary config home, template and output
// directory with PDF conversion disabled.
func setup(t *testing.T) (templateDir, outDir string) {
	t.Helper()
	templateDir = t.TempDir()
	outDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PROPOSAL_TEMPLATE_DIR", templateDir)
	t.Setenv("PROPOSAL_OUTPUT_DIR", outDir)
	t.Setenv("PROPOSAL_PDF_BACKEND", "none")
	t.Setenv("PROPOSAL_LOG_LEVEL", "off")
	writeTemplate(t, templateDir)
	return templateDir, outDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "proposal version dev")
}

func TestTypes(t *testing.T) {
	setup(t)

	out, err := execute(t, "types", "-o", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	var names []string
	for _, r := range rows {
		names = append(names, r["name"])
	}
	assert.Contains(t, names, "digital-marketing")
	assert.Contains(t, names, "it-consultation")

	out, err = execute(t, "types", "Contract")
	require.NoError(t, err)
	assert.Contains(t, out, "client_company_address")
	assert.Contains(t, out, "{client_name}")

	_, err = execute(t, "types", "Landscaping")
	assert.Error(t, err)
}

func TestGenerateFallsBackToDOCX(t *testing.T) {
	_, outDir := setup(t)

	out, err := execute(t, "generate",
		"--type", "IT Consultation",
		"--set", "client_name=Acme Ltd",
		"--set", "client_company_address=1 Main Street",
		"--set", "date=2024-03-01",
		"-o", "json")
	require.NoError(t, err)

	var res struct {
		Path     string `json:"path"`
		Format   string `json:"format"`
		Fallback string `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "docx", res.Format)
	assert.NotEmpty(t, res.Fallback)
	assert.Equal(t, filepath.Join(outDir, "IT Consultation_Acme Ltd.docx"), res.Path)
	assert.FileExists(t, res.Path)
}

func TestGenerateMissingFields(t *testing.T) {
	setup(t)

	_, err := execute(t, "generate", "--type", "IT Consultation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_name")

	_, err = execute(t, "generate", "--set", "client_name=Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--type is required")

	_, err = execute(t, "generate", "--type", "IT Consultation", "--set", "client_name")
	require.Error(t, err)
}

func TestGenerateValuesFile(t *testing.T) {
	_, outDir := setup(t)
	values := filepath.Join(t.TempDir(), "acme.yaml")
	require.NoError(t, os.WriteFile(values, []byte("client_name: Globex\nclient_company_address: 2 High Road\ndate: \"2024-03-01\"\n"), 0o644))

	out, err := execute(t, "generate", "--type", "Contract", "--values", values, "--set", "client_name=Initech")
	require.NoError(t, err)
	assert.Contains(t, out, "PDF conversion failed")
	assert.FileExists(t, filepath.Join(outDir, "IT Consultation_Initech.docx"))
}

func TestInspect(t *testing.T) {
	templateDir, _ := setup(t)
	path := filepath.Join(templateDir, "Contract Agreement.docx")

	out, err := execute(t, "inspect", path, "--type", "Contract")
	require.NoError(t, err)
	assert.Contains(t, out, "{client_name}")
	assert.Contains(t, out, "0-1")
	assert.Contains(t, out, "Template matches it-consultation")

	_, err = execute(t, "inspect", path, "--type", "Digital Marketing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestBatch(t *testing.T) {
	_, outDir := setup(t)
	manifest := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`defaults:
  client_company_address: 1 Main Street
proposals:
  - type: Contract
    values:
      client_name: Acme
  - type: Contract
    values:
      client_name: Globex
`), 0o644))

	out, err := execute(t, "batch", manifest, "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "docx (pdf conversion failed)")
	assert.FileExists(t, filepath.Join(outDir, "IT Consultation_Acme.docx"))
	assert.FileExists(t, filepath.Join(outDir, "IT Consultation_Globex.docx"))
}

func TestConfigInitAndShow(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	_, err := execute(t, "config", "init", "--config", path, "--backend", "libreoffice")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)

	_, err = execute(t, "config", "init", "--config", path, "--force", "--backend", "bogus")
	require.Error(t, err)

	out, err := execute(t, "config", "show", "--config", path, "-o", "json")
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	// The environment wins over the file.
	assert.Equal(t, "none", cfg["PDFBackend"])
}

func TestInvalidOutputFormat(t *testing.T) {
	setup(t)
	_, err := execute(t, "types", "-o", "xml")
	assert.Error(t, err)
}
