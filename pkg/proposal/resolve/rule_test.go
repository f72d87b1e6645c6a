package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationRuleFires(t *testing.T) {
	region := newRegion("Additional Features and Enhancements: {Additional}", " ", "{per week}")
	report := resolveRegion(t, New(), region, TokenMap{"{Additional}": 300})

	assert.Equal(t, []string{"Additional Features and Enhancements: $ 300.00", " ", ""}, region.texts())
	assert.Equal(t, "annotation", report.Regions[0].Rule)
	assert.Equal(t, 1, report.Replacements["{Additional}"])
}

func TestAnnotationRuleNeedsMarker(t *testing.T) {
	region := newRegion("Weekly {Additional} fee")
	report := resolveRegion(t, New(), region, TokenMap{"{Additional}": 300})

	assert.Equal(t, []string{"Weekly $ 300.00 fee"}, region.texts())
	assert.Empty(t, report.Regions[0].Rule)
}

func TestAnnotationRuleNeedsWholeTokenInOneRun(t *testing.T) {
	region := newRegion("Additional Features: {Addi", "tional} extra")
	report := resolveRegion(t, New(), region, TokenMap{"{Additional}": 300})

	assert.Equal(t, []string{"Additional Features: $ 300.00", " extra"}, region.texts())
	assert.Empty(t, report.Regions[0].Rule)
}

func TestAnnotationRuleIgnoresOtherTokens(t *testing.T) {
	region := newRegion("Additional Features for {client_name}", " {note}")
	resolveRegion(t, New(), region, TokenMap{"{client_name}": "Acme"})

	assert.Equal(t, []string{"Additional Features for Acme", " {note}"}, region.texts())
}

func TestWithoutRules(t *testing.T) {
	region := newRegion("Additional Features and Enhancements: {Additional}", " {per week}")
	resolveRegion(t, New(WithoutRules()), region, TokenMap{"{Additional}": 300})

	assert.Equal(t, []string{"Additional Features and Enhancements: $ 300.00", " {per week}"}, region.texts())
}
