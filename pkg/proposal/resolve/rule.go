package resolve

import (
	"strings"
)

// Rule handles a token in a region in place of the general replacement.
type Rule interface {
	Name() string
	// Apply replaces key in region and reports whether it did. A rule that
	// returns false must leave the region untouched.
	Apply(region Region, key, value string) bool
}

// AnnotationRule rewrites a token that is followed by a bracketed
// annotation inside a marked region, such as
//
//	Additional Features and Enhancements: {Additional} {per week}
//
// The run holding the whole token keeps its text before the token and gets
// the value; every later run holding a brace is cleared. The rule only fires
// when the region text contains Marker and one run holds the complete token.
type AnnotationRule struct {
	Marker string
	Token  string
}

// AdditionalFeaturesRule returns the rule for the add-on price box.
func AdditionalFeaturesRule() *AnnotationRule {
	return &AnnotationRule{Marker: "Additional Features", Token: AdditionalToken}
}

// Name returns "annotation".
func (a *AnnotationRule) Name() string { return "annotation" }

// Apply implements Rule.
func (a *AnnotationRule) Apply(region Region, key, value string) bool {
	if key != a.Token || !strings.Contains(region.Text(), a.Marker) {
		return false
	}
	runs := region.Runs()
	for i, run := range runs {
		text := run.Text()
		at := strings.Index(text, key)
		if at < 0 {
			continue
		}
		run.SetText(text[:at] + value)
		for _, later := range runs[i+1:] {
			if strings.ContainsAny(later.Text(), "{}") {
				later.SetText("")
			}
		}
		return true
	}
	return false
}
