// Package types provides the types command.
package types

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
)

// NewCmdTypes creates the types command.
func NewCmdTypes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types [TYPE]",
		Short: "List proposal types and their fields",
		Long: `Without arguments, list the known proposal types. With a type name,
list the fields it takes and the placeholders they fill.`,
		Example: `  proposal types
  proposal types "Digital Marketing" -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := cmdutil.NewRenderer(cmd)
			if err != nil {
				return err
			}
			gen, _, err := cmdutil.NewGenerator(cmd)
			if err != nil {
				return err
			}
			reg := gen.Registry()

			if len(args) == 0 {
				var rows [][]string
				for _, s := range reg.All() {
					rows = append(rows, []string{s.Name, s.Title, s.Template, strconv.Itoa(len(s.Fields))})
				}
				renderer.RenderTable([]string{"NAME", "TITLE", "TEMPLATE", "FIELDS"}, rows)
				return nil
			}

			s, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			var rows [][]string
			for _, f := range s.Fields {
				required := ""
				if f.Required {
					required = "yes"
				}
				rows = append(rows, []string{f.Name, string(f.Kind), required, f.Default, f.Token()})
			}
			for _, c := range s.Computed {
				if c.Internal {
					continue
				}
				formula := "sum(" + strings.Join(c.Sum, ", ") + ")"
				if len(c.Sum) == 0 {
					formula = strconv.FormatFloat(c.Rate, 'f', -1, 64) + " x " + c.Of
				}
				rows = append(rows, []string{c.Name, "computed", "", formula, c.Token()})
			}
			renderer.RenderTable([]string{"FIELD", "KIND", "REQUIRED", "DEFAULT", "TOKEN"}, rows)
			return nil
		},
	}
	return cmd
}
