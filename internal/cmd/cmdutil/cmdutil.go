// Package cmdutil holds helpers shared by the proposal commands.
package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/view"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// LoadConfig loads the file named by --config (or the default path), the
// environment, and the --log-level override, and installs the result as the
// global configuration.
func LoadConfig(cmd *cobra.Command) (*proposal.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := proposal.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	proposal.SetGlobalConfig(cfg)
	return cfg, nil
}

// NewGenerator builds a generator from the command's configuration.
func NewGenerator(cmd *cobra.Command) (*proposal.Generator, *proposal.Config, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	gen, err := proposal.NewGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	return gen, cfg, nil
}

// NewRenderer returns a renderer for --output and --no-color writing to the
// command's output.
func NewRenderer(cmd *cobra.Command) (*view.Renderer, error) {
	output, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}
	r := view.NewRenderer(view.Format(output), noColor)
	r.SetWriter(cmd.OutOrStdout())
	return r, nil
}

// ParseAssignments parses repeated key=value flags.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected field=value)", p)
		}
		out[key] = value
	}
	return out, nil
}

// Interactive reports whether prompts can be shown, which needs the
// command's input to be a terminal.
func Interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
