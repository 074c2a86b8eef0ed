package types

import "unicode"

// Token is a single word occurrence with its gold part-of-speech tag.
// Tokens are immutable once read from a corpus.
type Token struct {
	Word string `json:"word" yaml:"word"`
	Tag  string `json:"tag" yaml:"tag"`
}

func (token Token) IsCapitalized() bool {
	for _, r := range token.Word {
		return unicode.IsUpper(r)
	}
	return false
}

// TaggedCorpus is an ordered sequence of (word, gold tag) pairs.
type TaggedCorpus []Token

func (corpus TaggedCorpus) Words() []string {
	words := make([]string, len(corpus))
	for i, token := range corpus {
		words[i] = token.Word
	}
	return words
}

func (corpus TaggedCorpus) Tags() []string {
	tags := make([]string, len(corpus))
	for i, token := range corpus {
		tags[i] = token.Tag
	}
	return tags
}

func (corpus TaggedCorpus) TagSet() TagSet {
	tagSet := NewTagSet()
	for _, token := range corpus {
		tagSet.Add(token.Tag)
	}
	return tagSet
}
