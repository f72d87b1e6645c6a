// Package convert provides the convert command.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "convert IN.docx",
		Short: "Convert a DOCX file to PDF",
		Long: `Convert a DOCX file to PDF with the configured backend (LibreOffice, or
Word on Windows).`,
		Example: `  proposal convert "Digital Marketing_Acme.docx"
  proposal convert contract.docx --out signed/contract.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}

			in := args[0]
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + ".pdf"
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ConvertTimeout)
			defer cancel()

			conv := proposal.NewConverter(cfg)
			if err := conv.Convert(ctx, in, out); err != nil {
				return err
			}
			msg := fmt.Sprintf("Converted %s to %s", in, out)
			if cfg.VerifyPDF {
				pages, err := proposal.VerifyPDF(out)
				if err != nil {
					return fmt.Errorf("converted file is not a valid PDF: %w", err)
				}
				msg += fmt.Sprintf(" (%d pages)", pages)
			}
			renderer.Success(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output PDF path (default: input with .pdf extension)")
	return cmd
}
