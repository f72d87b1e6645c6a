package configcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

type initOptions struct {
	force       bool
	templateDir string
	outputDir   string
	backend     string
}

// NewCmdInit creates the config init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Example: `  proposal config init
  proposal config init --template-dir ~/proposals/templates --backend libreoffice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			path, err := runInit(configPath(cmd), opts, cmdutil.Interactive(cmd))
			if err != nil {
				return err
			}
			renderer.Success("Configuration written to " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&opts.templateDir, "template-dir", "", "Directory holding the DOCX templates")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory generated files are saved to")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "PDF backend: auto, libreoffice, word or none")

	return cmd
}

var errNotOverwritten = errors.New("configuration file exists; use --force to overwrite")

func runInit(path string, opts *initOptions, interactive bool) (string, error) {
	if _, err := os.Stat(path); err == nil && !opts.force {
		if !interactive {
			return "", errNotOverwritten
		}
		overwrite := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("%s exists. Overwrite?", path)).
			Value(&overwrite)
		if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
			return "", err
		}
		if !overwrite {
			return "", errNotOverwritten
		}
	}

	cfg := proposal.DefaultConfig()
	if opts.templateDir != "" {
		cfg.TemplateDir = opts.templateDir
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.backend != "" {
		cfg.PDFBackend = opts.backend
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := cfg.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
