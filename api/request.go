package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch"

	"text2phenotype.com/tbl/brill"
	"text2phenotype.com/tbl/types"
)

// Request serves ad-hoc tagging over loaded model artifacts. Request-level
// params are JSON merge-patched onto the configured defaults, so callers
// only send what they want to override.
type Request struct {
	Models   map[string]brill.Model
	Defaults types.RequestParams
}

type tagRequest struct {
	Words  []string        `json:"words"`
	Params json.RawMessage `json:"params"`
}

type tagResponse struct {
	Model string   `json:"model"`
	Words []string `json:"words"`
	Tags  []string `json:"tags"`
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != "POST" {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := ioutil.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	var body tagRequest
	if err := json.Unmarshal(msg, &body); err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Request body is not valid JSON")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	params, err := req.mergeParams(body.Params)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not merge request params")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	model, ok := req.Models[params.Model]
	if !ok {
		logger.Error().Str("model", params.Model).Int("status", http.StatusNotFound).Msg("Unknown model")
		http.Error(w, "", http.StatusNotFound)
		return
	}
	if params.ApplyRules != nil && !*params.ApplyRules {
		model.Rules = nil
	}

	logger.Info().
		Str("model", params.Model).
		Int("words", len(body.Words)).
		Msg("Tagging request from API")

	response := tagResponse{
		Model: params.Model,
		Words: body.Words,
		Tags:  model.Tagger()(body.Words),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Err(err).Msg("Failed to write response")
		return
	}
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}

// mergeParams overlays the raw request params onto the configured defaults.
func (req *Request) mergeParams(raw json.RawMessage) (types.RequestParams, error) {
	defaults, err := json.Marshal(req.Defaults)
	if err != nil {
		return types.RequestParams{}, err
	}
	merged := defaults
	if len(raw) > 0 {
		if merged, err = jsonpatch.MergePatch(defaults, raw); err != nil {
			return types.RequestParams{}, fmt.Errorf("invalid params: %w", err)
		}
	}

	var params types.RequestParams
	if err := json.Unmarshal(merged, &params); err != nil {
		return types.RequestParams{}, err
	}
	return params, nil
}
