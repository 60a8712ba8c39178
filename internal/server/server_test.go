package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highmark/consult-copilot/internal/diagnosis"
	"github.com/highmark/consult-copilot/internal/knowledge"
	"github.com/highmark/consult-copilot/internal/llm"
	"github.com/highmark/consult-copilot/internal/pipeline"
	"github.com/highmark/consult-copilot/internal/recommendation"
	"github.com/highmark/consult-copilot/internal/types"
)

type stubExtractor struct{}

func (stubExtractor) Extract(context.Context, []byte, string) (*types.ProfilePatch, error) {
	return &types.ProfilePatch{Name: "张明", University: "华中科技大学"}, nil
}

type stubDiagnoser struct{}

func (stubDiagnoser) Diagnose(_ context.Context, profile *types.StudentProfile) (*types.DiagnosisResult, error) {
	return diagnosis.Fallback(diagnosis.SelectLocal(profile)), nil
}

type stubRecommender struct{}

func (stubRecommender) Recommend(context.Context, *types.StudentProfile, *types.DiagnosisResult) (*types.RecommendationResult, error) {
	return recommendation.Fallback(), nil
}

func newTestServer() *Server {
	return &Server{
		engines: pipeline.Engines{
			Extractor:   stubExtractor{},
			Diagnoser:   stubDiagnoser{},
			Recommender: stubRecommender{},
		},
		sessions: newSessionRegistry(),
		validate: validator.New(),
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createSession posts a new session and returns its id.
func createSession(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	w := doJSON(t, mux, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var view pipeline.SessionView
	decode(t, w, &view)
	require.NotEmpty(t, view.ID)
	return view.ID
}

// analyze runs the analysis for a session and asserts success.
func analyze(t *testing.T, mux *http.ServeMux, id string) {
	t.Helper()
	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetSession(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	w := doJSON(t, mux, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view pipeline.SessionView
	decode(t, w, &view)
	assert.Equal(t, pipeline.StateInput, view.State)
	assert.Equal(t, "普通一本", view.Profile.UniversityLevel)
}

func TestGetSession_NotFound(t *testing.T) {
	mux := newTestServer().routes()

	w := doJSON(t, mux, http.MethodGet, "/sessions/1b671a64-40d5-491e-99b0-da01ff1f3341", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	w := doJSON(t, mux, http.MethodPatch, "/sessions/"+id+"/profile", map[string]any{
		"name":            "李想",
		"target_industry": []string{"互联网/科技"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var view pipeline.SessionView
	decode(t, w, &view)
	assert.Equal(t, "李想", view.Profile.Name)
	assert.Equal(t, []string{"互联网/科技"}, view.Profile.TargetIndustry)
	// Untouched fields keep their defaults
	assert.Equal(t, "大三", view.Profile.Grade)
}

func TestUpdateProfile_RejectedAfterAnalysis(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPatch, "/sessions/"+id+"/profile", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestImportResume(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/resume", map[string]any{
		"file_name": "resume.pdf",
		"mime_type": "application/pdf",
		"data":      base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session pipeline.SessionView `json:"session"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "张明", resp.Session.Profile.Name)
	assert.Equal(t, "resume.pdf", resp.Session.Profile.ResumeFileName)
	assert.Equal(t, pipeline.ParseDone, resp.Session.ParseStatus)
}

func TestImportResume_BadRequests(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	// Missing required fields
	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/resume", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invalid base64
	w = doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/resume", map[string]any{
		"file_name": "r.pdf", "mime_type": "application/pdf", "data": "!!not base64!!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_ReachesResult(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session pipeline.SessionView `json:"session"`
	}
	decode(t, w, &resp)
	assert.Equal(t, pipeline.StateResult, resp.Session.State)
	require.NotNil(t, resp.Session.Quote)
	assert.Len(t, resp.Session.Quote.Lines, len(knowledge.Catalog()))
}

func TestAnalyze_RejectedTwice(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/analyze", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReset(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view pipeline.SessionView
	decode(t, w, &view)
	assert.Equal(t, pipeline.StateInput, view.State)
	assert.Nil(t, view.Quote)
}

func TestQuote_RequiresResultState(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)

	w := doJSON(t, mux, http.MethodGet, "/sessions/"+id+"/quote", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestQuote_ToggleAndDiscount(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPost,
		fmt.Sprintf("/sessions/%s/quote/lines/%s/toggle", id, knowledge.ProductTestPractice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodPut, "/sessions/"+id+"/quote/discount", map[string]any{"discount": 500})
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot struct {
		Totals struct {
			Discount   float64 `json:"discount"`
			GrandTotal float64 `json:"grand_total"`
		} `json:"totals"`
	}
	decode(t, w, &snapshot)
	assert.Equal(t, 500.0, snapshot.Totals.Discount)

	// Negative discount is rejected by request validation
	w = doJSON(t, mux, http.MethodPut, "/sessions/"+id+"/quote/discount", map[string]any{"discount": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuote_CustomLineLifecycle(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPost, "/sessions/"+id+"/quote/lines", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Line struct {
			ID string `json:"id"`
		} `json:"line"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.Line.ID)

	w = doJSON(t, mux, http.MethodPatch,
		fmt.Sprintf("/sessions/%s/quote/lines/%s", id, created.Line.ID),
		map[string]any{"name": "模拟面试加练", "price": 1200})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodDelete,
		fmt.Sprintf("/sessions/%s/quote/lines/%s", id, created.Line.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuote_CatalogLineProtections(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	// Renaming a catalog line is rejected
	w := doJSON(t, mux, http.MethodPatch,
		fmt.Sprintf("/sessions/%s/quote/lines/%s", id, knowledge.ProductPTA),
		map[string]any{"name": "改名"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Removing a catalog line is rejected
	w = doJSON(t, mux, http.MethodDelete,
		fmt.Sprintf("/sessions/%s/quote/lines/%s", id, knowledge.ProductPTA), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown line ids are 404
	w = doJSON(t, mux, http.MethodDelete, "/sessions/"+id+"/quote/lines/NO_SUCH_LINE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuote_RejectedLineEditMutatesNothing(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	// A combined price+name edit on a catalog line is rejected as a whole:
	// the name makes it a 422, and the price must not have been applied.
	w := doJSON(t, mux, http.MethodPatch,
		fmt.Sprintf("/sessions/%s/quote/lines/%s", id, knowledge.ProductPTA),
		map[string]any{"price": 1, "name": "改名"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/sessions/"+id+"/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot struct {
		Lines []struct {
			ID         string  `json:"id"`
			Name       string  `json:"name"`
			FinalPrice float64 `json:"final_price"`
		} `json:"lines"`
	}
	decode(t, w, &snapshot)

	found := false
	for _, line := range snapshot.Lines {
		if line.ID == knowledge.ProductPTA {
			found = true
			assert.Equal(t, 9800.0, line.FinalPrice)
			assert.NotEqual(t, "改名", line.Name)
		}
	}
	require.True(t, found)
}

func TestQuote_ProposalEdits(t *testing.T) {
	mux := newTestServer().routes()
	id := createSession(t, mux)
	analyze(t, mux, id)

	w := doJSON(t, mux, http.MethodPatch, "/sessions/"+id+"/quote/proposal", map[string]any{
		"core_strategy": "修改后的策略",
		"scarcity":      []string{"仅剩1个名额"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot struct {
		Proposal struct {
			CoreStrategy string `json:"core_strategy"`
			SalesLogic   struct {
				Scarcity []string `json:"scarcity"`
				Timing   []string `json:"timing"`
			} `json:"sales_logic"`
		} `json:"proposal"`
	}
	decode(t, w, &snapshot)
	assert.Equal(t, "修改后的策略", snapshot.Proposal.CoreStrategy)
	assert.Equal(t, []string{"仅剩1个名额"}, snapshot.Proposal.SalesLogic.Scarcity)
	// Unedited bucket keeps the recommendation copy
	assert.NotEmpty(t, snapshot.Proposal.SalesLogic.Timing)
}

func TestKnowledgeEndpoints(t *testing.T) {
	mux := newTestServer().routes()

	w := doJSON(t, mux, http.MethodGet, "/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog struct {
		Items []knowledge.CatalogItem `json:"items"`
	}
	decode(t, w, &catalog)
	assert.Len(t, catalog.Items, 6)

	w = doJSON(t, mux, http.MethodGet, "/playbook/objections", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, mux, http.MethodGet, "/form-options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var options map[string][]string
	decode(t, w, &options)
	assert.NotEmpty(t, options["target_industries"])
	assert.NotEmpty(t, options["university_levels"])
}

func TestHealth(t *testing.T) {
	mux := newTestServer().routes()
	w := doJSON(t, mux, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListRuns_WithoutStore(t *testing.T) {
	mux := newTestServer().routes()
	w := doJSON(t, mux, http.MethodGet, "/runs", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

type stubLLMClient struct{}

func (stubLLMClient) GenerateJSON(context.Context, llm.Request) (string, error) { return "", nil }
func (stubLLMClient) GetModel(llm.ModelTier) string                             { return "stub-model" }
func (stubLLMClient) Close() error                                              { return nil }

func TestStart_ShutsDownOnSignal(t *testing.T) {
	s := newTestServer()
	s.llmClient = stubLLMClient{}
	s.httpServer = &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: s.routes(),
	}

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Let the listener come up before signalling
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after SIGTERM")
	}
}
