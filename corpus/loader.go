// Package corpus reads Brown-style tagged text into the data model. Each
// line holds space separated word/tag pairs; annotation components for
// headlines, titles, foreign and cited words are stripped before the tag is
// accepted.
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"text2phenotype.com/tbl/logger"
	"text2phenotype.com/tbl/types"
	"text2phenotype.com/tbl/utils"
)

// disallowed Brown annotation components, never usable as a tag on their own
var disallowedTags = map[string]bool{
	"HL": true,
	"TL": true,
	"FW": true,
	"NC": true,
}

// ParseWordTag splits a raw "word/tag" record. A hyphenated tag resolves to
// its first component that is not a disallowed annotation. The second result
// is false for malformed records and for records whose every tag component
// is disallowed; such records are skipped by the loader and never reach the
// learner.
func ParseWordTag(raw string) (types.Token, bool) {
	sep := strings.LastIndex(raw, "/")
	if sep <= 0 || sep == len(raw)-1 {
		return types.Token{}, false
	}

	word := raw[:sep]
	for _, component := range strings.Split(strings.ToUpper(raw[sep+1:]), "-") {
		if component == "" || disallowedTags[component] {
			continue
		}
		return types.Token{
			Word: utils.GlobalStringStore().Get(word),
			Tag:  utils.GlobalStringStore().Get(component),
		}, true
	}

	return types.Token{}, false
}

// Parse reads a whole corpus from r, skipping malformed records.
func Parse(r io.Reader) (types.TaggedCorpus, error) {
	brlLogger := logger.NewLogger("Corpus parser")

	var corpus types.TaggedCorpus
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		for _, raw := range strings.Fields(scanner.Text()) {
			token, ok := ParseWordTag(raw)
			if !ok {
				skipped++
				continue
			}
			corpus = append(corpus, token)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	if skipped > 0 {
		brlLogger.Debug().
			Int("skipped", skipped).
			Int("kept", len(corpus)).
			Msg("Dropped malformed or fully annotated records")
	}
	return corpus, nil
}

func ParseBytes(data []byte) (types.TaggedCorpus, error) {
	return Parse(bytes.NewReader(data))
}

func LoadFile(filePath string) (types.TaggedCorpus, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Partitions are the three non-overlapping corpus slices used in training.
type Partitions struct {
	Initial types.TaggedCorpus
	Patch   types.TaggedCorpus
	Test    types.TaggedCorpus
}

// Split cuts the corpus into initial/patch/test partitions by token count.
// Boundaries are deterministic: the corpus is taken in order, never
// shuffled, so repeated runs see identical partitions.
func Split(corpus types.TaggedCorpus, params types.SplitParams) (Partitions, error) {
	total := params.InitialShare + params.PatchShare + params.TestShare
	if params.InitialShare <= 0 || params.PatchShare <= 0 || params.TestShare < 0 {
		return Partitions{}, fmt.Errorf("invalid partition shares %+v", params)
	}
	if total > 1.0+1e-9 {
		return Partitions{}, fmt.Errorf("partition shares %+v sum to %v, must not exceed 1", params, total)
	}

	n := len(corpus)
	initialEnd := int(float64(n) * params.InitialShare)
	patchEnd := initialEnd + int(float64(n)*params.PatchShare)
	testEnd := patchEnd + int(float64(n)*params.TestShare)
	if testEnd > n {
		testEnd = n
	}

	return Partitions{
		Initial: corpus[:initialEnd],
		Patch:   corpus[initialEnd:patchEnd],
		Test:    corpus[patchEnd:testEnd],
	}, nil
}
