// Package root provides the root command for the proposal CLI.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/batch"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/configcmd"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/convert"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/generate"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/inspect"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/types"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/version"
)

// NewCmdRoot creates the root command for proposal.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Generate client proposals from Word templates",
		Long: `proposal fills the {placeholders} of a DOCX proposal template with client
details and pricing, then converts the result to PDF with LibreOffice or
Microsoft Word. When no converter is available the DOCX is kept instead.

Get started by running: proposal types`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/proposal/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error, off")

	cmd.SetVersionTemplate("proposal version " + version.String() + "\n")

	cmd.AddCommand(generate.NewCmdGenerate())
	cmd.AddCommand(batch.NewCmdBatch())
	cmd.AddCommand(types.NewCmdTypes())
	cmd.AddCommand(inspect.NewCmdInspect())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(newCmdVersion())

	return cmd
}

func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "proposal version "+version.String())
		},
	}
}
