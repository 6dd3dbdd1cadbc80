package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures every request and serves canned envelopes keyed
// by method+path.
type recordingServer struct {
	*httptest.Server

	requests  []recordedRequest
	responses map[string]string
}

type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newRecordingServer() *recordingServer {
	rs := &recordingServer{responses: map[string]string{}}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rs.requests = append(rs.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
		})

		w.Header().Set("Content-Type", "application/json")

		if resp, ok := rs.responses[r.Method+" "+r.URL.Path]; ok {
			_, _ = w.Write([]byte(resp))

			return
		}

		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	return rs
}

func TestWorkflows_ListCarriesPageQuery(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	rs.responses["GET /workflows"] = `{
		"success": true,
		"data": [{"id": 1, "name": "Sync CRM", "is_active": true, "execution_count": 12}],
		"current_page": 3,
		"last_page": 5,
		"prev_page_url": "/workflows?page=2",
		"next_page_url": "/workflows?page=4"
	}`

	client := NewClient(rs.URL, staticToken("tok"))

	workflows, page, err := client.Workflows().List(t.Context(), 3)
	require.NoError(t, err)

	require.Len(t, workflows, 1)
	assert.Equal(t, "Sync CRM", workflows[0].Name)
	assert.True(t, workflows[0].IsActive)

	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 5, page.LastPage)
	assert.True(t, page.HasPrev())
	assert.True(t, page.HasNext())

	require.Len(t, rs.requests, 1)
	assert.Equal(t, "page=3", rs.requests[0].query)
}

func TestWorkflows_DeleteHitsResourcePath(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Workflows().Delete(t.Context(), 42))

	require.Len(t, rs.requests, 1)
	assert.Equal(t, http.MethodDelete, rs.requests[0].method)
	assert.Equal(t, "/workflows/42", rs.requests[0].path)
}

func TestWorkflows_ActivateDeactivateUsePatch(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Workflows().Activate(t.Context(), 7))
	require.NoError(t, client.Workflows().Deactivate(t.Context(), 7))

	require.Len(t, rs.requests, 2)
	assert.Equal(t, http.MethodPatch, rs.requests[0].method)
	assert.Equal(t, "/workflows/7/activate", rs.requests[0].path)
	assert.Equal(t, "/workflows/7/deactivate", rs.requests[1].path)
}

func TestWorkflows_ExecuteDefaultsInput(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Workflows().Execute(t.Context(), 5, nil))

	require.Len(t, rs.requests, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(rs.requests[0].body), &body))
	assert.Equal(t, map[string]any{}, body["input_data"])
}

func TestExecutions_ListCarriesPerPage(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	rs.responses["GET /executions"] = `{
		"success": true,
		"data": [{"id": 9, "workflow_id": 1, "status": "running", "mode": "manual"}],
		"current_page": 1,
		"last_page": 1
	}`

	client := NewClient(rs.URL, staticToken("tok"))

	executions, page, err := client.Executions().List(t.Context(), 1, 20)
	require.NoError(t, err)

	require.Len(t, executions, 1)
	assert.Equal(t, "running", string(executions[0].Status))
	assert.False(t, page.HasNext())
	assert.Equal(t, "page=1&per_page=20", rs.requests[0].query)
}

func TestExecutions_StopAndRetry(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Executions().Stop(t.Context(), 11))
	require.NoError(t, client.Executions().Retry(t.Context(), 11))

	assert.Equal(t, "/executions/11/stop", rs.requests[0].path)
	assert.Equal(t, "/executions/11/retry", rs.requests[1].path)
}

func TestCredentials_CreatePayloadShape(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	_, err := client.Credentials().Create(t.Context(), CredentialRequest{
		Name: "prod db",
		Type: "database",
		Data: map[string]any{"host": "db.internal", "database": "app"},
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(rs.requests[0].body), &body))
	assert.Equal(t, "prod db", body["name"])
	assert.Equal(t, "database", body["type"])
	assert.Equal(t, "db.internal", body["data"].(map[string]any)["host"])
}

func TestCredentials_TestEndpoint(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Credentials().Test(t.Context(), 4))
	assert.Equal(t, "/credentials/4/test", rs.requests[0].path)
}

func TestTemplates_UseReturnsWorkflow(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	rs.responses["POST /templates/2/use"] = `{"success":true,"data":{"id":77,"name":"From Template"}}`

	client := NewClient(rs.URL, staticToken("tok"))

	workflow, err := client.Templates().Use(t.Context(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 77, workflow.ID)
}

func TestVariables_CreateAndDelete(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	_, err := client.Variables().Create(t.Context(), VariableRequest{Key: "API_HOST", Value: "example.com"})
	require.NoError(t, err)
	require.NoError(t, client.Variables().Delete(t.Context(), 6))

	assert.Equal(t, http.MethodPost, rs.requests[0].method)
	assert.Equal(t, "/variables", rs.requests[0].path)
	assert.Equal(t, "/variables/6", rs.requests[1].path)
}

func TestVersions_RestorePath(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	client := NewClient(rs.URL, staticToken("tok"))

	require.NoError(t, client.Versions().Restore(t.Context(), 3, 14))
	assert.Equal(t, "/workflows/3/versions/14/restore", rs.requests[0].path)
}

func TestAnalytics_Summary(t *testing.T) {
	rs := newRecordingServer()
	defer rs.Close()

	rs.responses["GET /analytics/summary"] = `{
		"success": true,
		"data": {"total_workflows": 10, "active_workflows": 4, "success_rate": 0.93}
	}`

	client := NewClient(rs.URL, staticToken("tok"))

	summary, err := client.Analytics().Summary(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalWorkflows)
	assert.InDelta(t, 0.93, summary.SuccessRate, 0.0001)
}
