package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/pkg/config"
	"github.com/gridboard/gridboard/pkg/errorinfo"
	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/readiness"
	"github.com/gridboard/gridboard/pkg/storage"
	"github.com/gridboard/gridboard/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, JSONOutput: true, Output: io.Discard})
	os.Exit(m.Run())
}

const testDump = `{
  "/wf1/TaskA": {"99109": {"site_a": 5, "site_b": 2}, "8020": {"site_a": 1}},
  "/wf1/TaskB": {"99109": {"site_b": 3}},
  "/wf2/TaskC": {"137": {"site_c": 4}}
}`

func newTestServer(t *testing.T) (*Server, *storage.BoltStore) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "all_errors.json")
	require.NoError(t, os.WriteFile(path, []byte(testDump), 0644))

	cache := errorinfo.NewCache(path, time.Hour, readiness.Static{
		"site_a": types.ReadinessGreen,
	}, nil)
	t.Cleanup(func() { cache.Close() })

	store, err := storage.NewBoltStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.DataLocation = path

	return NewServer(cfg, cache, store, nil), store
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "site_a")
	assert.Contains(t, body, "99109")
	assert.Contains(t, body, `href="/workflow/wf1"`)

	// Each cell carries its per-error-code breakdown in axis order
	assert.Contains(t, body, `title="8020: 1, 99109: 5"`)
	assert.Contains(t, body, `title="137: 4"`)
}

func TestIndexPagePievar(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/?pievar=stepname")
	require.Equal(t, http.StatusOK, rec.Code)

	// Rows are error codes when dividing by workflow
	body := rec.Body.String()
	assert.Contains(t, body, "errorcode")
	assert.NotContains(t, body, `href="/workflow/`)
}

func TestWorkflowPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/workflow/wf1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Workflow wf1")
	assert.Contains(t, body, "TaskA")
	assert.Contains(t, body, "TaskB")
	// No action selected yet: no parameter controls
	assert.NotContains(t, body, "param_0_")
}

func TestWorkflowPageSkipsEmptySiteColumns(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/workflow/wf2")
	require.Equal(t, http.StatusOK, rec.Code)

	// wf2 only has errors at site_c
	body := rec.Body.String()
	assert.Contains(t, body, "site_c")
	assert.NotContains(t, body, "site_a")
}

func TestWorkflowPageWithAction(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/workflow/wf1?action=recover")
	require.Equal(t, http.StatusOK, rec.Code)

	// wf1 has two steps, so recover renders two namespaced blocks
	body := rec.Body.String()
	assert.Contains(t, body, "param_0_xrootd")
	assert.Contains(t, body, "param_0_splitting")
	assert.Contains(t, body, "param_0_memory")
	assert.Contains(t, body, "param_1_xrootd")
	assert.Contains(t, body, "operator")
}

func TestWorkflowPageAnchorsUnique(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/workflow/wf1?action=recover")
	require.Equal(t, http.StatusOK, rec.Code)

	// Step table headings and form block anchors must not collide
	body := rec.Body.String()
	assert.Contains(t, body, `id="step-/wf1/TaskA"`)
	assert.Equal(t, 1, strings.Count(body, `id="/wf1/TaskA"`))
	assert.Equal(t, 1, strings.Count(body, `id="/wf1/TaskB"`))
}

func TestWorkflowPageUnknownWorkflow(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/workflow/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAction(t *testing.T) {
	srv, store := newTestServer(t)

	form := url.Values{}
	form.Set("workflow", "wf1")
	form.Set("action", "clone")
	form.Set("operator", "alice")
	form.Set("param_0_splitting", "2x")
	form.Set("param_0_memory", "4000")
	form.Set("newreason_short", "stuck")
	form.Set("newreason_long", "Jobs stuck at a draining site.")

	req := httptest.NewRequest("POST", "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/workflow/wf1?submitted=1", rec.Header().Get("Location"))

	records, err := store.ListActionsByWorkflow("wf1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "clone", record.Action)
	assert.Equal(t, "alice", record.Operator)
	assert.Equal(t, "2x", record.Parameters["wf1"]["splitting"])
	assert.Equal(t, "4000", record.Parameters["wf1"]["memory"])
	assert.Contains(t, record.Reasons, "stuck")

	// The typed reason is stored for reuse
	reason, err := store.GetReason("stuck")
	require.NoError(t, err)
	assert.Equal(t, "Jobs stuck at a draining site.", reason.Long)
}

func TestSubmitMissingWorkflow(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest("POST", "/submit", strings.NewReader("action=clone"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	require.NoError(t, store.SaveAction(&types.ActionRecord{
		ID:       "id-1",
		Workflow: "wf1",
		Action:   "investigate",
	}))

	rec := get(t, srv, "/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"id-1"`)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
