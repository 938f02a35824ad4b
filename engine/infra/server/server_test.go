package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/core"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/infra/memory"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/engine/transformation"
	"github.com/integraph/integraph/pkg/config"
	"github.com/integraph/integraph/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(authEnabled bool) *config.Config {
	cfg := config.Default()
	cfg.Auth.Enabled = authEnabled
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Minute
	return cfg
}

func newTestServer(t *testing.T, authEnabled bool) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	repos := Repos{
		Agents:          store.Agents(),
		Processes:       store.Processes(),
		Schedules:       store.Schedules(),
		Tasks:           store.Tasks(),
		Fields:          store.Fields(),
		Connectors:      store.Connectors(),
		Transformations: store.Transformations(),
		Users:           store.Users(),
	}
	return NewServer(testConfig(authEnabled), logger.NewTestLogger(), repos), store
}

type requestOpts struct {
	token string
}

func doRequest(t *testing.T, srv *Server, method, path string, body any, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) core.ProblemDocument {
	t.Helper()
	var doc core.ProblemDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestServer_Health(t *testing.T) {
	t.Run("Should report healthy without a checker", func(t *testing.T) {
		srv, _ := newTestServer(t, false)
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/health", nil, requestOpts{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})
}

func TestServer_Workflow(t *testing.T) {
	srv, _ := newTestServer(t, false)

	var createdAgent agent.Agent
	t.Run("Should create an agent", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v0/agents", gin.H{
			"name": "warehouse-agent",
			"code": "wh-01",
			"kind": "Process",
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decodeData(t, rec, &createdAgent)
		assert.NotZero(t, createdAgent.ID)
		assert.True(t, createdAgent.Enabled)
	})

	var createdProcess process.Process
	t.Run("Should create a process owned by the agent", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v0/processes", gin.H{
			"agent_id":     createdAgent.ID,
			"name":         "nightly-sync",
			"trigger_kind": "Scheduler",
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decodeData(t, rec, &createdProcess)
		assert.Equal(t, createdAgent.ID, createdProcess.AgentID)
		assert.Equal(t, process.StatusStopped, createdProcess.Status)
	})

	var createdTask task.Task
	t.Run("Should create a task with the first sequence slot", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v0/tasks", gin.H{
			"process_id": createdProcess.ID,
			"name":       "dedupe",
			"kind":       "Logic",
			"logic":      gin.H{"kind": "UniqueFilter"},
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decodeData(t, rec, &createdTask)
		assert.Equal(t, task.SequenceSpacing, createdTask.SequenceNumber)
	})

	var createdFields []*field.Field
	t.Run("Should create a batch of fields under the task", func(t *testing.T) {
		path := fmt.Sprintf("/api/v0/tasks/%d/fields", createdTask.ID)
		rec := doRequest(t, srv, http.MethodPost, path, []gin.H{
			{"task_id": createdTask.ID, "key": "status", "data_type": "Single", "value": "active"},
			{"task_id": createdTask.ID, "key": "category", "data_type": "Single", "value": "retail"},
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		decodeData(t, rec, &createdFields)
		require.Len(t, createdFields, 2)
	})

	t.Run("Should create a transformation over the task's fields", func(t *testing.T) {
		path := fmt.Sprintf("/api/v0/tasks/%d/transformations", createdTask.ID)
		rec := doRequest(t, srv, http.MethodPost, path, []gin.H{{
			"task_id":            createdTask.ID,
			"condition_field_id": createdFields[0].ID,
			"value_field_id":     createdFields[1].ID,
			"condition_kind":     "Equal",
		}}, requestOpts{})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created []*transformation.Transformation
		decodeData(t, rec, &created)
		require.Len(t, created, 1)
		assert.Equal(t, createdTask.ID, created[0].TaskID)
	})

	t.Run("Should keep the sequence stable when reordering a single task", func(t *testing.T) {
		path := fmt.Sprintf("/api/v0/processes/%d/tasks/reorder", createdProcess.ID)
		rec := doRequest(t, srv, http.MethodPost, path, gin.H{
			"task_ids": []core.ID{createdTask.ID},
		}, requestOpts{})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var reordered []*task.Task
		decodeData(t, rec, &reordered)
		require.Len(t, reordered, 1)
		assert.Equal(t, task.SequenceSpacing, reordered[0].SequenceNumber)
	})

	t.Run("Should start and then stop the process", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/v0/processes/%d/start", createdProcess.ID), nil, requestOpts{})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var started process.Process
		decodeData(t, rec, &started)
		assert.Equal(t, process.StatusRunning, started.Status)

		rec = doRequest(t, srv, http.MethodPost, fmt.Sprintf("/api/v0/processes/%d/stop", createdProcess.ID), nil, requestOpts{})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var stopped process.Process
		decodeData(t, rec, &stopped)
		assert.Equal(t, process.StatusStopped, stopped.Status)
	})

	t.Run("Should refuse to delete the agent while it owns a process", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/v0/agents/%d", createdAgent.ID), nil, requestOpts{})
		require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		doc := decodeProblem(t, rec)
		assert.Equal(t, http.StatusConflict, doc.Status)
		assert.Contains(t, doc.Details, "still owns")
	})
}

func TestServer_ProblemResponses(t *testing.T) {
	srv, _ := newTestServer(t, false)

	t.Run("Should return a problem document for a missing agent", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/agents/9999", nil, requestOpts{})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		doc := decodeProblem(t, rec)
		assert.Equal(t, http.StatusNotFound, doc.Status)
		assert.Equal(t, "Not Found", doc.Error)
		assert.Equal(t, "about:blank", doc.Type)
	})

	t.Run("Should reject a non-numeric id", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/agents/abc", nil, requestOpts{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v0/agents", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		doc := decodeProblem(t, rec)
		assert.Equal(t, "invalid request body", doc.Details)
	})

	t.Run("Should reject an invalid schedule with the offending bound", func(t *testing.T) {
		agentRec := doRequest(t, srv, http.MethodPost, "/api/v0/agents", gin.H{
			"name": "a", "code": "a-1", "kind": "Process",
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, agentRec.Code)
		var ag agent.Agent
		decodeData(t, agentRec, &ag)

		procRec := doRequest(t, srv, http.MethodPost, "/api/v0/processes", gin.H{
			"agent_id": ag.ID, "name": "p", "trigger_kind": "Scheduler",
		}, requestOpts{})
		require.Equal(t, http.StatusCreated, procRec.Code)
		var proc process.Process
		decodeData(t, procRec, &proc)

		rec := doRequest(t, srv, http.MethodPost, "/api/v0/schedules", gin.H{
			"process_id":  proc.ID,
			"recurrence":  "Weekly",
			"start_date":  time.Now().UTC().Format(time.RFC3339),
			"day_of_week": 9,
			"hour":        8,
		}, requestOpts{})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		doc := decodeProblem(t, rec)
		assert.Contains(t, doc.Details, "day_of_week")
	})
}

func TestServer_Auth(t *testing.T) {
	srv, store := newTestServer(t, true)

	user := &auth.User{Username: "ops", CreatedAt: time.Now().UTC()}
	require.NoError(t, user.SetPassword("hunter2"))
	_, err := store.Users().Create(t.Context(), user)
	require.NoError(t, err)

	t.Run("Should reject requests without a token", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/agents", nil, requestOpts{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject a garbage token", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/agents", nil, requestOpts{token: "not-a-token"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should leave the health endpoint open", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v0/health", nil, requestOpts{})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should admit requests carrying a token from login", func(t *testing.T) {
		loginRec := doRequest(t, srv, http.MethodPost, "/api/v0/auth/login", gin.H{
			"username": "ops", "password": "hunter2",
		}, requestOpts{})
		require.Equal(t, http.StatusOK, loginRec.Code, loginRec.Body.String())
		var out struct {
			AccessToken string `json:"access_token"`
		}
		decodeData(t, loginRec, &out)
		require.NotEmpty(t, out.AccessToken)

		rec := doRequest(t, srv, http.MethodGet, "/api/v0/agents", nil, requestOpts{token: out.AccessToken})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should reject bad credentials on login", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v0/auth/login", gin.H{
			"username": "ops", "password": "wrong",
		}, requestOpts{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
