package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataqc/domain/quality"
	"dataqc/internal/analysis"
	"dataqc/internal/testkit"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(analysis.New(analysis.DefaultConfig()), testkit.NewInMemoryRuleRepository())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := AnalyzeRequest{
		Headers: []string{"name", "age"},
		Rows: []quality.Row{
			{"name": "Alice", "age": "30"},
			{"name": "Bob", "age": "25"},
		},
	}
	resp := postJSON(t, ts.URL+"/api/analyze", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result quality.AnalysisResult
	decodeJSON(t, resp, &result)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.TotalColumns)
	assert.Equal(t, quality.TypeNumber, result.DataTypes["age"])
	assert.Equal(t, 100, result.QualityScore)
}

func TestAnalyzeEndpoint_InvalidInput(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/analyze", AnalyzeRequest{Headers: []string{"a"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.NotEmpty(t, body["error"])
}

func TestAnalyzeEndpoint_StoredRules(t *testing.T) {
	ts := newTestServer(t)

	create := postJSON(t, ts.URL+"/api/rules/", RuleRequest{
		Name:      "adult",
		Condition: "age >= 18",
		Severity:  quality.SeverityHigh,
	})
	require.Equal(t, http.StatusCreated, create.StatusCode)
	create.Body.Close()

	req := AnalyzeRequest{
		Headers: []string{"age"},
		Rows: []quality.Row{
			{"age": "12"},
			{"age": "40"},
		},
		UseStoredRules: true,
	}
	resp := postJSON(t, ts.URL+"/api/analyze", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result quality.AnalysisResult
	decodeJSON(t, resp, &result)
	require.Len(t, result.RuleResults, 1)
	assert.Equal(t, "adult", result.RuleResults[0].RuleName)
	assert.Equal(t, []int{0}, result.RuleResults[0].AffectedRows)
}

func TestRuleLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// create
	resp := postJSON(t, ts.URL+"/api/rules/", RuleRequest{
		Name:      "positive price",
		Condition: "price > 0",
		Severity:  quality.SeverityMedium,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created quality.CustomRule
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	ruleURL := fmt.Sprintf("%s/api/rules/%s/", ts.URL, created.ID)

	// get
	resp, err := http.Get(ruleURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched quality.CustomRule
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, "positive price", fetched.Name)

	// update
	httpReq, err := http.NewRequest(http.MethodPut, ruleURL, bytes.NewReader(mustMarshal(t, RuleRequest{
		Name:      "strictly positive price",
		Condition: "price > 0",
		Severity:  quality.SeverityHigh,
	})))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated quality.CustomRule
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "strictly positive price", updated.Name)
	assert.Equal(t, quality.SeverityHigh, updated.Severity)

	// toggle off
	resp = postJSON(t, ts.URL+fmt.Sprintf("/api/rules/%s/toggle", created.ID), struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled quality.CustomRule
	decodeJSON(t, resp, &toggled)
	assert.False(t, toggled.Active)

	// list
	resp, err = http.Get(ts.URL + "/api/rules/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rules []quality.CustomRule
	decodeJSON(t, resp, &rules)
	require.Len(t, rules, 1)

	// delete
	httpReq, err = http.NewRequest(http.MethodDelete, ruleURL, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// gone
	resp, err = http.Get(ruleURL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRule_Validation(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/rules/", RuleRequest{Name: "", Condition: "a > 0"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRuleEndpoints_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/rules/does-not-exist/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/rules/does-not-exist/toggle", struct{}{})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
