package brill

import "text2phenotype.com/tbl/types"

// Apply rewrites every position whose current tag equals the rule's FromTag
// and whose context satisfies the template predicate. The predicate reads
// the unmodified input sequence, never positions rewritten in the same pass,
// so one application cannot cascade into itself. Context offsets that fall
// outside the sequence simply never match. The input is left untouched; the
// result is always a fresh slice of the same length.
func Apply(rule types.Rule, tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)

	for i := range tags {
		if tags[i] != rule.FromTag {
			continue
		}
		if contextMatches(rule, tags, i) {
			out[i] = rule.ToTag
		}
	}
	return out
}

// ApplyAll folds Apply left to right over an ordered rule set. Later rules
// observe earlier rules' output.
func ApplyAll(rules types.RuleSet, tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	for _, rule := range rules {
		out = Apply(rule, out)
	}
	return out
}

func contextMatches(rule types.Rule, tags []string, i int) bool {
	at := func(j int) bool {
		return j >= 0 && j < len(tags) && tags[j] == rule.ContextTag
	}

	switch rule.Template {
	case types.TemplatePrevTag:
		return at(i - 1)
	case types.TemplateNextTag:
		return at(i + 1)
	case types.TemplatePrevTag2:
		return at(i - 2)
	case types.TemplateNextTag2:
		return at(i + 2)
	case types.TemplatePrevTag1or2:
		return at(i-1) || at(i-2)
	case types.TemplateNextTag1or2:
		return at(i+1) || at(i+2)
	}
	return false
}
