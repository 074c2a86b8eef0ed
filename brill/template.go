package brill

import "text2phenotype.com/tbl/types"

// templateOrder fixes the enumeration order of the context templates.
var templateOrder = []types.TemplateID{
	types.TemplatePrevTag,
	types.TemplateNextTag,
	types.TemplatePrevTag2,
	types.TemplateNextTag2,
	types.TemplatePrevTag1or2,
	types.TemplateNextTag1or2,
}

// Candidates instantiates every context template once per tag in the tag
// set for one observed (wrong tag, correct tag) error class. The result is
// a pure function of its inputs with a fixed enumeration order: templates in
// id order, context tags in lexicographic order. Returns nil when fromTag
// equals toTag, since such a rule could never change a sequence.
func Candidates(fromTag, toTag string, tagSet types.TagSet) []types.Rule {
	if fromTag == toTag {
		return nil
	}

	contextTags := tagSet.Sorted()
	rules := make([]types.Rule, 0, len(templateOrder)*len(contextTags))
	for _, template := range templateOrder {
		for _, contextTag := range contextTags {
			rules = append(rules, types.Rule{
				Template:   template,
				FromTag:    fromTag,
				ToTag:      toTag,
				ContextTag: contextTag,
			})
		}
	}
	return rules
}
