package configcmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/view"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after the config file and PROPOSAL_*
environment variables have been applied.`,
		Example: `  # Show current config
  proposal config show

  # As JSON
  proposal config show -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			output, _ := cmd.Flags().GetString("output")
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd.OutOrStdout(), configPath(cmd), cfg, view.Format(output), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, path string, cfg *proposal.Config, format view.Format, noColor bool) error {
	if format == view.FormatJSON {
		r := view.NewRenderer(format, noColor)
		r.SetWriter(w)
		return r.RenderJSON(cfg)
	}

	if noColor {
		color.NoColor = true
	}
	dim := color.New(color.Faint)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", path)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		_, _ = dim.Fprintln(w, "(file not found, using defaults)")
	}
	return nil
}
