package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRules() RuleSet {
	return RuleSet{
		{Template: TemplateNextTag, FromTag: "NN", ToTag: "VB", ContextTag: "TO"},
		{Template: TemplatePrevTag, FromTag: "VB", ToTag: "NN", ContextTag: "AT"},
		{Template: TemplatePrevTag1or2, FromTag: "NN", ToTag: "JJ", ContextTag: "QL"},
	}
}

func TestRuleCompare(t *testing.T) {
	base := Rule{Template: TemplateNextTag, FromTag: "NN", ToTag: "VB", ContextTag: "TO"}

	require.Equal(t, 0, base.Compare(base))
	require.Equal(t, -1, Rule{Template: TemplatePrevTag, FromTag: "ZZ", ToTag: "ZZ", ContextTag: "ZZ"}.Compare(base),
		"template id dominates the tag ordering")
	require.Equal(t, -1, Rule{Template: TemplateNextTag, FromTag: "AT", ToTag: "VB", ContextTag: "TO"}.Compare(base))
	require.Equal(t, 1, Rule{Template: TemplateNextTag, FromTag: "NN", ToTag: "VB", ContextTag: "VB"}.Compare(base))
}

func TestRuleSetEncodePreservesOrder(t *testing.T) {
	rules := sampleRules()

	encoded, err := rules.Encode()
	require.NoError(t, err)

	decoded, err := DecodeRuleSet(encoded)
	require.NoError(t, err)
	require.Equal(t, rules, decoded)
}

func TestRuleValidate(t *testing.T) {
	tagSet := NewTagSet("NN", "VB", "TO", "AT", "JJ", "QL")

	require.NoError(t, sampleRules().Validate(tagSet))

	cases := []struct {
		name string
		rule Rule
	}{
		{"unknown template", Rule{Template: 42, FromTag: "NN", ToTag: "VB", ContextTag: "TO"}},
		{"self rewrite", Rule{Template: TemplatePrevTag, FromTag: "NN", ToTag: "NN", ContextTag: "TO"}},
		{"foreign from tag", Rule{Template: TemplatePrevTag, FromTag: "XX", ToTag: "VB", ContextTag: "TO"}},
		{"foreign to tag", Rule{Template: TemplatePrevTag, FromTag: "NN", ToTag: "XX", ContextTag: "TO"}},
		{"foreign context tag", Rule{Template: TemplatePrevTag, FromTag: "NN", ToTag: "VB", ContextTag: "XX"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.rule.Validate(tagSet))
		})
	}
}

func TestRuleSetFingerprint(t *testing.T) {
	rules := sampleRules()

	require.Equal(t, rules.Fingerprint(), sampleRules().Fingerprint())

	reversed := RuleSet{rules[2], rules[1], rules[0]}
	require.NotEqual(t, rules.Fingerprint(), reversed.Fingerprint(),
		"application order is part of the identity")
}

func TestTagSetSorted(t *testing.T) {
	tagSet := NewTagSet("VB", "AT", "NN", "AT")
	require.Equal(t, []string{"AT", "NN", "VB"}, tagSet.Sorted())
	require.True(t, tagSet.Contains("AT"))
	require.False(t, tagSet.Contains("JJ"))
}

func TestTokenIsCapitalized(t *testing.T) {
	require.True(t, Token{Word: "Boston"}.IsCapitalized())
	require.False(t, Token{Word: "dog"}.IsCapitalized())
	require.False(t, Token{Word: ""}.IsCapitalized())
	require.False(t, Token{Word: "1st"}.IsCapitalized())
}
