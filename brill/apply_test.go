package brill

import (
	"testing"

	"github.com/stretchr/testify/require"

	"text2phenotype.com/tbl/types"
)

func TestApplyPrevTag(t *testing.T) {
	rule := types.Rule{
		Template: types.TemplatePrevTag, FromTag: "NN", ToTag: "JJ", ContextTag: "VB",
	}

	in := []string{"NN", "VB", "NN"}
	out := Apply(rule, in)

	// position 2's preceding tag is VB; position 0 has no preceding tag
	require.Equal(t, []string{"NN", "VB", "JJ"}, out)
	require.Equal(t, []string{"NN", "VB", "NN"}, in, "input must stay untouched")
}

func TestApplyReadsOriginalContextOnly(t *testing.T) {
	// If the predicate saw rewrites from the same pass, position 2 would
	// chain off position 1's fresh B.
	rule := types.Rule{
		Template: types.TemplatePrevTag, FromTag: "A", ToTag: "B", ContextTag: "B",
	}

	out := Apply(rule, []string{"B", "A", "A"})
	require.Equal(t, []string{"B", "B", "A"}, out)
}

func TestApplyBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		template types.TemplateID
		in       []string
		want     []string
	}{
		{"prev at start never matches", types.TemplatePrevTag, []string{"A", "Z"}, []string{"A", "Z"}},
		{"next at end never matches", types.TemplateNextTag, []string{"Z", "A"}, []string{"Z", "A"}},
		{"prev2 needs two positions back", types.TemplatePrevTag2, []string{"Z", "X", "A"}, []string{"Z", "X", "B"}},
		{"prev2 out of range at position one", types.TemplatePrevTag2, []string{"X", "A"}, []string{"X", "A"}},
		{"next2 needs two positions ahead", types.TemplateNextTag2, []string{"A", "X", "Z"}, []string{"B", "X", "Z"}},
		{"next2 out of range near the end", types.TemplateNextTag2, []string{"A", "Z"}, []string{"A", "Z"}},
		{"prev 1or2 matches either offset", types.TemplatePrevTag1or2, []string{"Z", "A", "A", "A"}, []string{"Z", "B", "B", "A"}},
		{"next 1or2 matches either offset", types.TemplateNextTag1or2, []string{"A", "A", "A", "Z"}, []string{"A", "B", "B", "Z"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := types.Rule{
				Template: tc.template, FromTag: "A", ToTag: "B", ContextTag: "Z",
			}
			require.Equal(t, tc.want, Apply(rule, tc.in))
		})
	}
}

func TestApplyNonMatchingIsIdentity(t *testing.T) {
	rule := types.Rule{
		Template: types.TemplateNextTag, FromTag: "X", ToTag: "Y", ContextTag: "Z",
	}

	in := []string{"NN", "VB", "NN"}
	require.Equal(t, in, Apply(rule, in))
}

func TestApplyPreservesLength(t *testing.T) {
	rule := types.Rule{
		Template: types.TemplatePrevTag1or2, FromTag: "NN", ToTag: "VB", ContextTag: "NN",
	}

	for _, in := range [][]string{nil, {}, {"NN"}, {"NN", "NN", "NN", "VB"}} {
		require.Len(t, Apply(rule, in), len(in))
	}
}

func TestApplyAllOrderMatters(t *testing.T) {
	first := types.Rule{
		Template: types.TemplatePrevTag, FromTag: "A", ToTag: "B", ContextTag: "Z",
	}
	second := types.Rule{
		Template: types.TemplatePrevTag, FromTag: "B", ToTag: "C", ContextTag: "Z",
	}

	in := []string{"Z", "A"}
	// the second rule sees the first rule's output
	require.Equal(t, []string{"Z", "C"}, ApplyAll(types.RuleSet{first, second}, in))
	// reversed, nothing is B yet when the B->C rule runs
	require.Equal(t, []string{"Z", "B"}, ApplyAll(types.RuleSet{second, first}, in))
}
