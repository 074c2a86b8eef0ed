package brill

import (
	"path"
	"testing"

	"io/ioutil"

	"github.com/stretchr/testify/require"

	"text2phenotype.com/tbl/types"
)

func trainedModel(t *testing.T) Model {
	lexicon, patch := learnerFixture()
	result, err := Learn(lexicon, patch, LearnOptions{})
	require.NoError(t, err)
	return NewModel(lexicon, result)
}

func TestModelTagger(t *testing.T) {
	model := trainedModel(t)
	tagger := model.Tagger()

	require.Equal(t, []string{"TO", "VB", "AT", "NN"}, tagger([]string{"to", "run", "the", "run"}))
	// Corpus-wide counts tie AT/NN/TO at two, so the unseen lowercase word
	// falls back to the lexicographically smallest of them.
	require.Equal(t, []string{"NP", "AT"}, tagger([]string{"Boston", "marathon"}))
}

func TestModelRoundTrip(t *testing.T) {
	model := trainedModel(t)

	encoded, err := model.Encode()
	require.NoError(t, err)

	modelPath := path.Join(t.TempDir(), "brill.model.json")
	require.NoError(t, ioutil.WriteFile(modelPath, encoded, 0644))

	loaded, err := LoadModelFromFile(modelPath)
	require.NoError(t, err)
	require.Equal(t, model, loaded)

	words := []string{"to", "run", "Run"}
	require.Equal(t, model.Tagger()(words), loaded.Tagger()(words))
}

func TestModelValidateRejectsForeignTags(t *testing.T) {
	model := trainedModel(t)
	model.Rules = append(model.Rules, types.Rule{
		Template: types.TemplateNextTag, FromTag: "NN", ToTag: "ZZ", ContextTag: "TO",
	})
	require.Error(t, model.Validate())
}
