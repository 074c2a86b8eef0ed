package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"text2phenotype.com/tbl/utils"
)

// TemplateID identifies one of the Brill context templates a rule was
// instantiated from. The numeric order is part of the tie-breaking contract:
// lower ids win among rules with equal gain.
type TemplateID int

const (
	// TemplatePrevTag: the preceding tag is the context tag.
	TemplatePrevTag TemplateID = iota + 1
	// TemplateNextTag: the following tag is the context tag.
	TemplateNextTag
	// TemplatePrevTag2: the tag two positions back is the context tag.
	TemplatePrevTag2
	// TemplateNextTag2: the tag two positions ahead is the context tag.
	TemplateNextTag2
	// TemplatePrevTag1or2: one of the two preceding tags is the context tag.
	TemplatePrevTag1or2
	// TemplateNextTag1or2: one of the two following tags is the context tag.
	TemplateNextTag1or2
)

// Rule rewrites FromTag to ToTag at every position whose context satisfies
// the template predicate parameterized with ContextTag.
type Rule struct {
	Template   TemplateID `json:"template" yaml:"template"`
	FromTag    string     `json:"from_tag" yaml:"from_tag"`
	ToTag      string     `json:"to_tag" yaml:"to_tag"`
	ContextTag string     `json:"context_tag" yaml:"context_tag"`
}

// Compare orders rules by (template, from, to, context). It defines the
// deterministic tie-break among candidates with equal gain and must stay
// total so learned rule sets reproduce across runs.
func (rule Rule) Compare(other Rule) int {
	if rule.Template != other.Template {
		if rule.Template < other.Template {
			return -1
		}
		return 1
	}
	if c := strings.Compare(rule.FromTag, other.FromTag); c != 0 {
		return c
	}
	if c := strings.Compare(rule.ToTag, other.ToTag); c != 0 {
		return c
	}
	return strings.Compare(rule.ContextTag, other.ContextTag)
}

func (rule Rule) String() string {
	return fmt.Sprintf("T%d: %s->%s @ %s", rule.Template, rule.FromTag, rule.ToTag, rule.ContextTag)
}

// Validate rejects rules that reference tags outside the tag set. Rules
// produced by the template engine cannot trip this; rules decoded from an
// artifact can.
func (rule Rule) Validate(tagSet TagSet) error {
	if rule.Template < TemplatePrevTag || rule.Template > TemplateNextTag1or2 {
		return fmt.Errorf("rule %q: unknown template id %d", rule, rule.Template)
	}
	if rule.FromTag == rule.ToTag {
		return fmt.Errorf("rule %q: from and to tags are equal", rule)
	}
	for _, tag := range []string{rule.FromTag, rule.ToTag, rule.ContextTag} {
		if !tagSet.Contains(tag) {
			return fmt.Errorf("rule %q: tag %q is not in the tag set", rule, tag)
		}
	}
	return nil
}

// RuleSet is an ordered list of rules. Order is semantics: later rules see
// the effects of earlier ones, so encoding and decoding must preserve it.
type RuleSet []Rule

func (rules RuleSet) Validate(tagSet TagSet) error {
	for _, rule := range rules {
		if err := rule.Validate(tagSet); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes the rule set as a YAML document, in application order.
func (rules RuleSet) Encode() ([]byte, error) {
	return yaml.Marshal(rules)
}

func DecodeRuleSet(data []byte) (RuleSet, error) {
	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rule set: %w", err)
	}
	return rules, nil
}

// Fingerprint hashes the ordered rule list. Two rule sets share a
// fingerprint only if they apply identically.
func (rules RuleSet) Fingerprint() uint64 {
	chunks := make([][]byte, len(rules))
	for i, rule := range rules {
		chunks[i] = []byte(rule.String())
	}
	return utils.HashBytes(chunks...)
}
