package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"text2phenotype.com/tbl/brill"
	"text2phenotype.com/tbl/types"
)

func testAPIRequest() *Request {
	model := brill.Model{
		ProperNounTag: "NP",
		DefaultTag:    "NN",
		MostLikely:    map[string]string{"to": "TO", "run": "NN", "the": "AT"},
		Tags:          []string{"AT", "NN", "NP", "TO", "VB"},
		Rules: types.RuleSet{
			{Template: types.TemplatePrevTag, FromTag: "NN", ToTag: "VB", ContextTag: "TO"},
		},
	}
	return &Request{
		Models:   map[string]brill.Model{"default": model},
		Defaults: types.RequestParams{Model: "default"},
	}
}

func postJSON(t *testing.T, req *Request, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req.ProcessData(recorder, httptest.NewRequest("POST", "/", strings.NewReader(body)))
	return recorder
}

func TestProcessData(t *testing.T) {
	req := testAPIRequest()

	t.Run("tags with default model", func(t *testing.T) {
		recorder := postJSON(t, req, `{"words": ["to", "run", "the", "run"]}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response tagResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Equal(t, "default", response.Model)
		require.Equal(t, []string{"TO", "VB", "AT", "NN"}, response.Tags)
	})

	t.Run("params override disables rules", func(t *testing.T) {
		recorder := postJSON(t, req, `{"words": ["to", "run"], "params": {"apply_rules": false}}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response tagResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Equal(t, []string{"TO", "NN"}, response.Tags)
	})

	t.Run("unknown model", func(t *testing.T) {
		recorder := postJSON(t, req, `{"words": ["to"], "params": {"model": "missing"}}`)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		recorder := postJSON(t, req, `not json`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req.ProcessData(recorder, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
