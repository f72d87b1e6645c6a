// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage proposal configuration",
		Long:  `Commands for viewing and creating the proposal configuration file.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdInit())

	return cmd
}

func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return proposal.DefaultConfigPath()
}
