// Package batch provides the batch command.
package batch

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// NewCmdBatch creates the batch command.
func NewCmdBatch() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Generate every proposal listed in a manifest",
		Long: `Generate proposals from a YAML manifest or a spreadsheet.

A YAML manifest has optional defaults and a list of proposals:

  defaults:
    date: today
  proposals:
    - type: Digital Marketing
      values:
        client_name: Acme Ltd
        3d_SMP: 500

In a spreadsheet (.xlsx) the first row names the fields; a "type" column
selects the proposal type and an optional "client" column the file name.`,
		Example: `  proposal batch clients.yaml --out out
  proposal batch march.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			gen, cfg, err := cmdutil.NewGenerator(cmd)
			if err != nil {
				return err
			}
			manifest, err := proposal.LoadManifest(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			items, batchErr := gen.GenerateBatch(cmd.Context(), manifest.Requests())
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				row := []string{strconv.Itoa(item.Index + 1), item.Request.Type, "", ""}
				switch {
				case item.Err != nil:
					row[3] = "failed: " + item.Err.Error()
				default:
					path, err := item.Result.Save(outDir)
					if err != nil {
						row[3] = "failed: " + err.Error()
						break
					}
					row[2] = path
					row[3] = string(item.Result.Format)
					if item.Result.Fallback != nil {
						row[3] += " (pdf conversion failed)"
					}
				}
				rows = append(rows, row)
			}
			renderer.RenderTable([]string{"#", "TYPE", "FILE", "STATUS"}, rows)
			return batchErr
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: output_dir from config)")
	return cmd
}
