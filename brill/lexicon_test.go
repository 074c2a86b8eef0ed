package brill

import (
	"testing"

	"github.com/stretchr/testify/require"

	"text2phenotype.com/tbl/types"
)

func trainingCorpus() types.TaggedCorpus {
	return types.TaggedCorpus{
		{Word: "dog", Tag: "NN"},
		{Word: "dog", Tag: "NN"},
		{Word: "dog", Tag: "VB"},
		{Word: "Run", Tag: "VB"},
	}
}

func TestLexiconCounts(t *testing.T) {
	lexicon := NewLexicon(trainingCorpus(), "NP")

	require.Equal(t, map[string]int{"NN": 2, "VB": 1}, lexicon.TagCounts("dog"))
	require.Nil(t, lexicon.TagCounts("cat"))

	tag, ok := lexicon.MostLikelyTag("dog")
	require.True(t, ok)
	require.Equal(t, "NN", tag)

	_, ok = lexicon.MostLikelyTag("cat")
	require.False(t, ok)
}

func TestBaselineFallbackChain(t *testing.T) {
	lexicon := NewLexicon(trainingCorpus(), "NP")

	t.Run("seen word gets its most likely tag", func(t *testing.T) {
		require.Equal(t, "NN", lexicon.Tag("dog"))
	})

	t.Run("unseen capitalized word gets the proper noun tag", func(t *testing.T) {
		require.Equal(t, "NP", lexicon.Tag("Cat"))
	})

	t.Run("unseen lowercase word gets the corpus-wide most frequent tag", func(t *testing.T) {
		// corpus tags are NN,NN,VB,VB: the count tie resolves to the
		// lexicographically smaller NN
		require.Equal(t, "NN", lexicon.Tag("run"))
		require.Equal(t, "NN", lexicon.DefaultTag())
	})
}

func TestLexiconTagSetIsACopy(t *testing.T) {
	lexicon := NewLexicon(trainingCorpus(), "NP")

	tagSet := lexicon.TagSet()
	require.ElementsMatch(t, []string{"NN", "NP", "VB"}, tagSet.Sorted())

	tagSet.Add("JJ")
	require.ElementsMatch(t, []string{"NN", "NP", "VB"}, lexicon.TagSet().Sorted())
}

func TestTagAllAlignment(t *testing.T) {
	lexicon := NewLexicon(trainingCorpus(), "NP")

	words := []string{"dog", "Cat", "run", "Run"}
	tags := lexicon.TagAll(words)
	require.Equal(t, []string{"NN", "NP", "NN", "VB"}, tags)
	require.Len(t, tags, len(words))
}

func TestEmptyProperNounTagDefaults(t *testing.T) {
	lexicon := NewLexicon(trainingCorpus(), "")
	require.Equal(t, types.DefaultProperNounTag, lexicon.ProperNounTag())
}

func TestEmptyTrainingCorpusBaseline(t *testing.T) {
	lexicon := NewLexicon(nil, "NP")

	// Every baseline tag must stay inside the tag vocabulary even when
	// nothing was counted, so the default falls back to the proper-noun tag.
	require.Equal(t, "NP", lexicon.DefaultTag())
	require.Equal(t, []string{"NP", "NP"}, lexicon.TagAll([]string{"dog", "Boston"}))
	require.ElementsMatch(t, []string{"NP"}, lexicon.TagSet().Sorted())

	replayed, err := Replay(nil, lexicon, lexicon.TagSet(), []string{"dog"})
	require.NoError(t, err)
	require.Equal(t, []string{"NP"}, replayed)
}
