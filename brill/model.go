package brill

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"text2phenotype.com/tbl/types"
)

// Model is the self-contained inference artifact of a training run: the
// per-word most likely tags, the fallback tags and the ordered rule list.
// Tag counts are not carried; they are only needed during training.
type Model struct {
	ProperNounTag string            `json:"proper_noun_tag"`
	DefaultTag    string            `json:"default_tag"`
	MostLikely    map[string]string `json:"most_likely"`
	Tags          []string          `json:"tags"`
	Rules         types.RuleSet     `json:"rules"`
}

// NewModel packages a lexicon and a learned rule set for persistence.
func NewModel(lexicon *Lexicon, result LearnResult) Model {
	mostLikely := make(map[string]string, len(lexicon.mostLikely))
	for word, tag := range lexicon.mostLikely {
		mostLikely[word] = tag
	}
	return Model{
		ProperNounTag: lexicon.properNounTag,
		DefaultTag:    lexicon.defaultTag,
		MostLikely:    mostLikely,
		Tags:          result.TagSet.Sorted(),
		Rules:         result.Rules,
	}
}

// Validate rejects models whose rules reference tags outside the model's
// own tag vocabulary. Decoded artifacts go through here before first use.
func (m Model) Validate() error {
	tagSet := types.NewTagSet(m.Tags...)
	tagSet.Add(m.ProperNounTag)
	tagSet.Add(m.DefaultTag)
	if err := m.Rules.Validate(tagSet); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	return nil
}

// Tagger returns the inference function: baseline tags corrected by the
// rule list in order. The returned tags are index-aligned with the words.
func (m Model) Tagger() func(words []string) []string {
	return func(words []string) []string {
		tags := make([]string, len(words))
		for i, word := range words {
			tags[i] = baselineTag(word, m.MostLikely, m.ProperNounTag, m.DefaultTag)
		}
		return ApplyAll(m.Rules, tags)
	}
}

func (m Model) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func LoadModelFromFile(modelFilePath string) (Model, error) {
	var m Model
	buf, err := ioutil.ReadFile(modelFilePath)
	if err != nil {
		return m, err
	}

	if err = json.Unmarshal(buf, &m); err != nil {
		return m, err
	}
	return m, m.Validate()
}
