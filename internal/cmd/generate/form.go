package generate

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/adnan8914/appsynergies-proposal-generator/pkg/proposal"
)

// selectType asks for a proposal type.
func selectType(reg *proposal.Registry) (string, error) {
	var options []huh.Option[string]
	for _, s := range reg.All() {
		options = append(options, huh.NewOption(s.Title, s.Name))
	}
	var choice string
	err := huh.NewSelect[string]().
		Title("Proposal type").
		Options(options...).
		Value(&choice).
		Run()
	return choice, err
}

// fieldValidator mirrors the checks Schema.Tokens applies, so mistakes are
// caught while the form is open.
func fieldValidator(f proposal.Field) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if f.Required && f.Default == "" {
				return fmt.Errorf("%s is required", f.Label)
			}
			return nil
		}
		switch f.Kind {
		case proposal.KindCurrency:
			_, err := proposal.ParseAmount(s)
			return err
		case proposal.KindDate:
			if s == "today" {
				return nil
			}
			_, err := proposal.ParseDate(s)
			return err
		case proposal.KindEmail:
			if _, err := mail.ParseAddress(s); err != nil {
				return errors.New("not a valid email address")
			}
		}
		return nil
	}
}

// fillForm prompts for every field of s, starting from values.
func fillForm(s *proposal.Schema, values map[string]string) error {
	inputs := make([]*string, len(s.Fields))
	var fields []huh.Field
	for i, f := range s.Fields {
		v := values[f.Name]
		inputs[i] = &v

		desc := f.Help
		if f.Default != "" {
			desc = strings.TrimSpace(desc + " (default: " + f.Default + ")")
		}
		if f.Kind == proposal.KindMultiline {
			fields = append(fields, huh.NewText().
				Title(f.Label).
				Description(desc).
				Value(inputs[i]).
				Validate(fieldValidator(f)))
			continue
		}
		fields = append(fields, huh.NewInput().
			Title(f.Label).
			Description(desc).
			Placeholder(f.Default).
			Value(inputs[i]).
			Validate(fieldValidator(f)))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title(s.Title))
	if err := form.Run(); err != nil {
		return err
	}
	for i, f := range s.Fields {
		if v := strings.TrimSpace(*inputs[i]); v != "" {
			values[f.Name] = v
		} else {
			delete(values, f.Name)
		}
	}
	return nil
}

// missingRequired lists required fields without a value or default.
func missingRequired(s *proposal.Schema, values map[string]string) []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required && f.Default == "" && strings.TrimSpace(values[f.Name]) == "" {
			out = append(out, f.Name)
		}
	}
	return out
}
