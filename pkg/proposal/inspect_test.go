package proposal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inspectFixture(t *testing.T) []byte {
	return buildDOCX(t,
		para(run("Dear {client"), boldRun("_name},"))+
			para(run("Dated {date} and {broken"))+
			para(run("no tokens here }")),
		header("word/header1.xml", para(run("Total: {Total amount}"))))
}

func TestInspect(t *testing.T) {
	ins, err := Inspect(inspectFixture(t))
	require.NoError(t, err)

	want := []TokenRef{
		{Raw: "{client_name}", Location: TokenLocation{Part: "word/document.xml", Paragraph: 0, Run: 0, RunEnd: 1, CharStart: 5, CharEnd: 18, Ordinal: 0}},
		{Raw: "{date}", Location: TokenLocation{Part: "word/document.xml", Paragraph: 1, Run: 0, RunEnd: 0, CharStart: 6, CharEnd: 12, Ordinal: 1}},
		{Raw: "{broken", Unclosed: true, Location: TokenLocation{Part: "word/document.xml", Paragraph: 1, Run: 0, RunEnd: 0, CharStart: 17, CharEnd: 24, Ordinal: 2}},
		{Raw: "{Total amount}", Location: TokenLocation{Part: "word/header1.xml", Paragraph: 0, Run: 0, RunEnd: 0, CharStart: 7, CharEnd: 21, Ordinal: 3}},
	}
	if diff := cmp.Diff(want, ins.Tokens, cmpopts.IgnoreFields(TokenLocation{}, "AnchorID")); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, ins.Tokens[0].Location.Split())
	assert.False(t, ins.Tokens[1].Location.Split())
	assert.True(t, strings.HasPrefix(ins.DocumentHash, "sha256:"))
	assert.Equal(t, []string{"{Total amount}", "{client_name}", "{date}"}, ins.Names())
	require.Len(t, ins.Unclosed(), 1)

	again, err := Inspect(inspectFixture(t))
	require.NoError(t, err)
	assert.Equal(t, ins.Tokens[0].Location.AnchorID, again.Tokens[0].Location.AnchorID)
	assert.NotEqual(t, ins.Tokens[0].Location.AnchorID, ins.Tokens[1].Location.AnchorID)
}

func TestInspectCheckAgainst(t *testing.T) {
	ins, err := Inspect(inspectFixture(t))
	require.NoError(t, err)

	check := ins.CheckAgainst(loadSchema(t, "IT Consultation"))
	assert.Equal(t, "it-consultation", check.Schema)
	assert.Equal(t, []string{"{Total amount}"}, check.Unknown)
	assert.Equal(t, []string{"{client_company_address}"}, check.Unused)
	assert.Len(t, check.Unclosed, 1)
	assert.False(t, check.OK())

	clean, err := Inspect(buildDOCX(t, para(run("{client_name} {date} {client_company_address}"))))
	require.NoError(t, err)
	assert.True(t, clean.CheckAgainst(loadSchema(t, "IT Consultation")).OK())
}

func TestInspectErrors(t *testing.T) {
	_, err := Inspect(nil)
	assert.Error(t, err)

	_, err = Inspect([]byte("not a zip"))
	assert.Error(t, err)
}
