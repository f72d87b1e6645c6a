// Package generate provides the generate command.
package generate

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/view"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

type generateOptions struct {
	proposalType string
	client       string
	set          []string
	valuesFile   string
	outDir       string
	interactive  bool
}

// NewCmdGenerate creates the generate command.
func NewCmdGenerate() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a proposal",
		Long: `Fill the template of a proposal type and export it as PDF.

Values are read from --values (a YAML map of field names to values) and
--set flags, which take precedence. Missing required fields are prompted for
when running in a terminal. When no PDF converter is available the DOCX is
saved instead.`,
		Example: `  # Digital marketing proposal with inline values
  proposal generate --type "Digital Marketing" --set client_name="Acme Ltd" --set 3d_SMP=500

  # Values from a file, saved to ./out
  proposal generate --type contract --values acme.yaml --out out

  # Fill everything in a form
  proposal generate --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.proposalType, "type", "t", "", "Proposal type (see 'proposal types')")
	cmd.Flags().StringVar(&opts.client, "client", "", "Client name used in the file name (default: client_name)")
	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "Set a field: name=value (repeatable)")
	cmd.Flags().StringVarP(&opts.valuesFile, "values", "f", "", "YAML file of field values")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Output directory (default: output_dir from config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for every field")

	return cmd
}

func readValues(path string) (map[string]string, error) {
	values := make(map[string]string)
	if path == "" {
		return values, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse values: %w", err)
	}
	return values, nil
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	renderer, err := cmdutil.NewRenderer(cmd)
	if err != nil {
		return err
	}
	gen, cfg, err := cmdutil.NewGenerator(cmd)
	if err != nil {
		return err
	}

	values, err := readValues(opts.valuesFile)
	if err != nil {
		return err
	}
	set, err := cmdutil.ParseAssignments(opts.set)
	if err != nil {
		return err
	}
	for k, v := range set {
		values[k] = v
	}

	typeName := opts.proposalType
	if typeName == "" {
		if !opts.interactive || !cmdutil.Interactive(cmd) {
			return fmt.Errorf("--type is required (one of: %s)", strings.Join(gen.Registry().Names(), ", "))
		}
		if typeName, err = selectType(gen.Registry()); err != nil {
			return err
		}
	}
	schema, err := gen.Registry().Get(typeName)
	if err != nil {
		return err
	}

	missing := missingRequired(schema, values)
	if opts.interactive || (len(missing) > 0 && cmdutil.Interactive(cmd)) {
		if err := fillForm(schema, values); err != nil {
			return err
		}
	} else if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	res, err := gen.Generate(cmd.Context(), proposal.Request{
		Type:       schema.Name,
		ClientName: opts.client,
		Values:     values,
	})
	if err != nil {
		return err
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	path, err := res.Save(outDir)
	if err != nil {
		return err
	}
	return renderResult(renderer, res, path)
}

type resultJSON struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Path     string         `json:"path"`
	Format   string         `json:"format"`
	Size     int            `json:"size"`
	Pages    int            `json:"pages,omitempty"`
	Fallback string         `json:"fallback,omitempty"`
	Report   map[string]int `json:"replacements"`
	Skipped  int            `json:"skippedShapes"`
}

func renderResult(r *view.Renderer, res *proposal.Result, path string) error {
	if r.Format() == view.FormatJSON {
		out := resultJSON{
			ID:      res.ID,
			Type:    res.Type,
			Path:    path,
			Format:  string(res.Format),
			Size:    len(res.Data),
			Pages:   res.Pages,
			Report:  res.Report.Replacements,
			Skipped: len(res.Report.Skipped()),
		}
		if res.Fallback != nil {
			out.Fallback = res.Fallback.Error()
		}
		return r.RenderJSON(out)
	}

	if res.Fallback != nil {
		r.Warning("PDF conversion failed, saved DOCX instead")
	}
	lines := []string{
		"File:    " + path,
		"Format:  " + strings.ToUpper(string(res.Format)) + " (" + view.HumanBytes(len(res.Data)) + ")",
		"Tokens:  " + res.Report.Summary(),
	}
	if res.Pages > 0 {
		lines = append(lines, fmt.Sprintf("Pages:   %d", res.Pages))
	}
	r.RenderBox(res.FileName, lines)
	r.Success("Proposal generated")
	return nil
}
