// Package inspect provides the inspect command.
package inspect

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adnan8914/appsynergies-proposal-generator/internal/cmd/cmdutil"
	"github.com/adnan8914/appsynergies-proposal-generator/internal/view"
	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

type report struct {
	Template string                `json:"template"`
	Hash     string                `json:"documentHash"`
	Tokens   []proposal.TokenRef   `json:"tokens"`
	Check    *proposal.SchemaCheck `json:"check,omitempty"`
}

// NewCmdInspect creates the inspect command.
func NewCmdInspect() *cobra.Command {
	var proposalType string

	cmd := &cobra.Command{
		Use:   "inspect TEMPLATE",
		Short: "List the placeholders of a template",
		Long: `List every {placeholder} in a DOCX template with its location, including
tokens Word has split over several runs. With --type, compare the template
against the fields of that proposal type.`,
		Example: `  proposal inspect "templates/DM Proposal.docx"
  proposal inspect templates/Ai_automation.docx --type "AI Automation"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], proposalType)
		},
	}
	cmd.Flags().StringVarP(&proposalType, "type", "t", "", "Check the template against a proposal type")
	return cmd
}

func runInspect(cmd *cobra.Command, path, proposalType string) error {
	renderer, err := cmdutil.NewRenderer(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	ins, err := proposal.Inspect(data)
	if err != nil {
		return err
	}

	out := report{Template: path, Hash: ins.DocumentHash, Tokens: ins.Tokens}
	if proposalType != "" {
		gen, _, err := cmdutil.NewGenerator(cmd)
		if err != nil {
			return err
		}
		schema, err := gen.Registry().Get(proposalType)
		if err != nil {
			return err
		}
		check := ins.CheckAgainst(schema)
		out.Check = &check
	}

	if renderer.Format() == view.FormatJSON {
		if err := renderer.RenderJSON(out); err != nil {
			return err
		}
		return checkErr(out.Check)
	}

	var rows [][]string
	for _, t := range ins.Tokens {
		runs := strconv.Itoa(t.Location.Run)
		if t.Location.Split() {
			runs += "-" + strconv.Itoa(t.Location.RunEnd)
		}
		note := ""
		if t.Unclosed {
			note = "unclosed"
		}
		rows = append(rows, []string{
			t.Raw,
			t.Location.Part,
			strconv.Itoa(t.Location.Paragraph),
			runs,
			note,
		})
	}
	renderer.RenderTable([]string{"TOKEN", "PART", "PARAGRAPH", "RUNS", "NOTE"}, rows)

	if out.Check != nil {
		renderer.RenderText("")
		if out.Check.OK() {
			renderer.Success("Template matches " + out.Check.Schema)
		}
		if len(out.Check.Unknown) > 0 {
			renderer.Error("Not filled by " + out.Check.Schema + ": " + strings.Join(out.Check.Unknown, ", "))
		}
		if len(out.Check.Unused) > 0 {
			renderer.Warning("Not in template: " + strings.Join(out.Check.Unused, ", "))
		}
	}
	return checkErr(out.Check)
}

func checkErr(check *proposal.SchemaCheck) error {
	if check == nil || check.OK() {
		return nil
	}
	return errors.New("template does not match " + check.Schema)
}
