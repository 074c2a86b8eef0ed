package types

import "sort"

// TagSet is the set of distinct tag symbols observed in a training corpus.
// Every tag a tagger or a rule assigns must be a member.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	tagSet := make(TagSet, len(tags))
	for _, tag := range tags {
		tagSet.Add(tag)
	}
	return tagSet
}

func (tagSet TagSet) Add(tag string) {
	tagSet[tag] = struct{}{}
}

func (tagSet TagSet) Contains(tag string) bool {
	_, ok := tagSet[tag]
	return ok
}

// Sorted returns the members in lexicographic order. Everything that
// enumerates a TagSet goes through here so that candidate generation and
// tie-breaking never depend on map iteration order.
func (tagSet TagSet) Sorted() []string {
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
