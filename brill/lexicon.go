// Package brill implements transformation-based error-driven learning for
// part-of-speech tagging: a lexical baseline tagger plus a greedy search for
// an ordered list of context-sensitive correction rules.
package brill

import (
	"sort"

	"text2phenotype.com/tbl/types"
)

// Lexicon holds per-word tag occurrence counts from a training corpus. It is
// built once and read-only afterwards.
type Lexicon struct {
	counts        map[string]map[string]int
	mostLikely    map[string]string
	defaultTag    string
	properNounTag string
	tagSet        types.TagSet
}

// NewLexicon counts the tags each word was seen with and precomputes the
// per-word and corpus-wide most likely tags. Count ties are broken by the
// lexicographically smallest tag so the baseline never depends on map
// iteration order.
func NewLexicon(training types.TaggedCorpus, properNounTag string) *Lexicon {
	counts := make(map[string]map[string]int)
	totals := make(map[string]int)
	tagSet := types.NewTagSet()

	for _, token := range training {
		wordCounts, ok := counts[token.Word]
		if !ok {
			wordCounts = make(map[string]int)
			counts[token.Word] = wordCounts
		}
		wordCounts[token.Tag]++
		totals[token.Tag]++
		tagSet.Add(token.Tag)
	}

	if properNounTag == "" {
		properNounTag = types.DefaultProperNounTag
	}
	tagSet.Add(properNounTag)

	mostLikely := make(map[string]string, len(counts))
	for word, wordCounts := range counts {
		mostLikely[word] = maxCountTag(wordCounts)
	}

	// An empty training corpus has no most frequent tag; fall back to the
	// proper-noun tag, which is always a tag set member.
	defaultTag := maxCountTag(totals)
	if defaultTag == "" {
		defaultTag = properNounTag
	}

	return &Lexicon{
		counts:        counts,
		mostLikely:    mostLikely,
		defaultTag:    defaultTag,
		properNounTag: properNounTag,
		tagSet:        tagSet,
	}
}

// maxCountTag returns the highest-count tag, smallest tag on ties.
func maxCountTag(counts map[string]int) string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	best, bestCount := "", -1
	for _, tag := range tags {
		if counts[tag] > bestCount {
			best, bestCount = tag, counts[tag]
		}
	}
	return best
}

// TagCounts returns the observed tag counts for word, nil if unseen.
func (lexicon *Lexicon) TagCounts(word string) map[string]int {
	wordCounts, ok := lexicon.counts[word]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(wordCounts))
	for tag, count := range wordCounts {
		out[tag] = count
	}
	return out
}

// MostLikelyTag returns the highest-count tag for a seen word.
func (lexicon *Lexicon) MostLikelyTag(word string) (string, bool) {
	tag, ok := lexicon.mostLikely[word]
	return tag, ok
}

// Tag assigns the baseline tag for a word. Unseen words resolve through the
// fallback chain: capitalized words get the proper noun tag, everything else
// the corpus-wide most frequent tag. Never fails.
func (lexicon *Lexicon) Tag(word string) string {
	return baselineTag(word, lexicon.mostLikely, lexicon.properNounTag, lexicon.defaultTag)
}

// TagAll produces the initial predicted sequence for a word sequence,
// index-aligned 1:1 with the input.
func (lexicon *Lexicon) TagAll(words []string) []string {
	tags := make([]string, len(words))
	for i, word := range words {
		tags[i] = lexicon.Tag(word)
	}
	return tags
}

// TagSet returns a copy of the observed tag set; the lexicon itself stays
// immutable.
func (lexicon *Lexicon) TagSet() types.TagSet {
	tagSet := make(types.TagSet, len(lexicon.tagSet))
	for tag := range lexicon.tagSet {
		tagSet.Add(tag)
	}
	return tagSet
}

func (lexicon *Lexicon) DefaultTag() string {
	return lexicon.defaultTag
}

func (lexicon *Lexicon) ProperNounTag() string {
	return lexicon.properNounTag
}

func baselineTag(word string, mostLikely map[string]string, properNounTag, defaultTag string) string {
	if tag, ok := mostLikely[word]; ok {
		return tag
	}
	if (types.Token{Word: word}).IsCapitalized() {
		return properNounTag
	}
	return defaultTag
}
