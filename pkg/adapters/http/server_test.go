package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	scribehttp "github.com/aretw0/scribe/pkg/adapters/http"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/article"
	"github.com/aretw0/scribe/pkg/chat"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/observability"
	"github.com/aretw0/scribe/pkg/session"
	"github.com/aretw0/scribe/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	docs    *memory.Documents
	gen     *memory.Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gen := memory.NewGenerator().Respond(domain.PromptSummary, "- point")
	docs := memory.NewDocuments(
		domain.Document{
			ID: "a1", Title: "Cloud Costs", MetaDescription: "FinOps levers.", Body: "Rightsize.",
			Raw: map[string]any{"_id": "a1", "title": "Cloud Costs", "meta": map[string]any{"description": "FinOps levers."}},
		},
		domain.Document{ID: "empty"},
	)
	router := chat.NewRouter(session.NewManager(memory.NewStore()), gen, chat.WithDocuments(docs, "a1"))
	return &fixture{
		handler: scribehttp.NewHandler(&scribehttp.Server{
			Router:   router,
			Articles: article.NewService(docs, gen),
			Metrics:  observability.NewMetrics(),
			Version:  "test",
		}),
		docs: docs,
		gen:  gen,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestChat_Workflow(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"write a new article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", out["session_id"])
	assert.Equal(t, workflow.StartReply, out["response"])

	rec, out = f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"Hey!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, chat.GreetingReply, out["response"])
}

func TestChat_Validation(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{
		`{"message":"hi"}`,
		`{"session_id":"u1"}`,
		`{"session_id":"u1","message":""}`,
		`not json`,
	} {
		rec, out := f.do(t, http.MethodPost, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.NotEmpty(t, out["detail"], body)
	}

	big := `{"session_id":"u1","message":"` + strings.Repeat("a", chat.DefaultMaxInputSize+1) + `"}`
	rec, _ := f.do(t, http.MethodPost, "/chat", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_WhitespaceAnswerIsStoredVerbatim(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"write a new article"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"   "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	last, ok := f.gen.LastCall()
	require.True(t, ok)
	assert.Equal(t, domain.PromptGenerateTitles, last.Prompt)
	assert.Equal(t, "   ", last.Vars[domain.VarDescription])
}

func TestChat_ArticleOverride(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"any topic ideas?","article_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/chat", `{"session_id":"u1","message":"any topic ideas?","article_id":"a1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	last, _ := f.gen.LastCall()
	assert.Equal(t, domain.PromptSuggestTopics, last.Prompt)
	assert.Equal(t, "Rightsize.", last.Vars[domain.VarText])
}

func TestArticleEndpoints(t *testing.T) {
	f := newFixture(t)

	t.Run("details", func(t *testing.T) {
		rec, out := f.do(t, http.MethodPost, "/article-details", `{"article_id":"a1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "Cloud Costs", out["article"].(map[string]any)["title"])
	})

	t.Run("summary report", func(t *testing.T) {
		rec, out := f.do(t, http.MethodPost, "/article-summary", `{"article_id":"a1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "- point", out["ai_summary"])
		extracted := out["extracted_data"].(map[string]any)
		assert.Equal(t, "Cloud Costs FinOps levers.", extracted["combined_text"])
	})

	t.Run("summarize empty article", func(t *testing.T) {
		rec, out := f.do(t, http.MethodPost, "/summarize", `{"article_id":"empty"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, article.NoDataToSummarize, out["summary"])
	})

	for _, path := range []string{"/article-details", "/article-summary", "/summarize"} {
		t.Run("missing id "+path, func(t *testing.T) {
			rec, out := f.do(t, http.MethodPost, path, `{}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "article_id is required", out["error"])
		})
		t.Run("not found "+path, func(t *testing.T) {
			rec, out := f.do(t, http.MethodPost, path, `{"article_id":"nope"}`)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Article with ID nope not found", out["error"])
		})
	}
}

type brokenArticles struct{ scribehttp.Articles }

func (brokenArticles) Summarize(ctx context.Context, id string) (*article.Summary, error) {
	return nil, errors.New("connection reset")
}

func (brokenArticles) Ping(ctx context.Context) error { return errors.New("no reachable servers") }

func TestArticleEndpoints_InternalErrorAndHealth(t *testing.T) {
	h := scribehttp.NewHandler(&scribehttp.Server{Articles: brokenArticles{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/summarize", bytes.NewBufferString(`{"article_id":"x"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error: connection reset")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"error: no reachable servers"}`, rec.Body.String())
}

func TestIndexHealthMetricsAndCORS(t *testing.T) {
	f := newFixture(t)

	rec, out := f.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", out["version"])
	assert.Contains(t, out["endpoints"], "POST /chat")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec, out = f.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "connected", out["database"])

	rec, _ = f.do(t, http.MethodOptions, "/chat", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `scribe_http_request_duration_seconds_count{method="GET",route="/health",status="200"} 1`)
}
