// Package http exposes the chat router and the article service over a chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/article"
	"github.com/aretw0/scribe/pkg/chat"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Responder is the chat entry point (implemented by *chat.Router).
type Responder interface {
	Respond(ctx context.Context, sessionID, message string, opts ...chat.RespondOption) (chat.Reply, error)
}

// Articles answers the article endpoints (implemented by *article.Service).
type Articles interface {
	Details(ctx context.Context, id string) (*domain.Document, error)
	SummaryReport(ctx context.Context, id string) (*article.Report, error)
	Summarize(ctx context.Context, id string) (*article.Summary, error)
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	Router      Responder
	Articles    Articles
	Metrics     *observability.Metrics
	Logger      *slog.Logger
	CorsOrigins []string
	Version     string
}

// NewHandler creates the HTTP handler.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.Get("/", s.Index)
	r.Get("/health", s.Health)
	r.Post("/chat", s.Chat)
	if s.Articles != nil {
		r.Post("/article-details", s.ArticleDetails)
		r.Post("/article-summary", s.ArticleSummary)
		r.Post("/summarize", s.Summarize)
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

// endpoints is the index served on GET /.
var endpoints = map[string]string{
	"GET /health":           "Health check",
	"POST /chat":            "Send a message for a session",
	"POST /article-details": "Get full article details by ID",
	"POST /article-summary": "Get article details with AI summary",
	"POST /summarize":       "Get title and summary only",
	"GET /metrics":          "Prometheus metrics",
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Welcome to the scribe chatbot API",
		"version":   s.Version,
		"endpoints": endpoints,
	})
}

// Health handles GET /health. The service stays healthy when only the database is down.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	status := "connected"
	if s.Articles != nil {
		if err := s.Articles.Ping(r.Context()); err != nil {
			status = fmt.Sprintf("error: %v", err)
			s.Logger.Warn("Health: document store unreachable", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": status,
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	ArticleID string `json:"article_id,omitempty"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var body chatRequest
	if err := decode(r, &body); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.SessionID == "" || body.Message == "" {
		writeDetail(w, http.StatusBadRequest, "session_id and message are required.")
		return
	}

	message, err := chat.SanitizeInput(body.Message)
	if err != nil {
		s.Logger.Warn("Chat: input rejected", "err", err, "size", len(body.Message))
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Invalid input: %v", err))
		return
	}

	reply, err := s.Router.Respond(r.Context(), body.SessionID, message, chat.WithArticle(body.ArticleID))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrDocumentNotFound) {
			status = http.StatusNotFound
		}
		writeDetail(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{SessionID: reply.SessionID, Response: reply.Text})
}

type articleRequest struct {
	ArticleID string `json:"article_id"`
}

// articleID extracts the id or writes the 400 itself.
func (s *Server) articleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body articleRequest
	if err := decode(r, &body); err != nil || body.ArticleID == "" {
		s.Logger.Warn("No article_id provided")
		writeError(w, http.StatusBadRequest, "article_id is required")
		return "", false
	}
	return body.ArticleID, true
}

func (s *Server) articleFailure(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, domain.ErrDocumentNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Article with ID %s not found", id))
		return
	}
	s.Logger.Error("Article request failed", "article_id", id, "err", err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err))
}

// ArticleDetails handles POST /article-details.
func (s *Server) ArticleDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := s.articleID(w, r)
	if !ok {
		return
	}
	doc, err := s.Articles.Details(r.Context(), id)
	if err != nil {
		s.articleFailure(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "article": articleView(doc)})
}

// ArticleSummary handles POST /article-summary.
func (s *Server) ArticleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := s.articleID(w, r)
	if !ok {
		return
	}
	report, err := s.Articles.SummaryReport(r.Context(), id)
	if err != nil {
		s.articleFailure(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"article":        articleView(report.Document),
		"extracted_data": report.Extracted,
		"ai_summary":     report.AISummary,
	})
}

// Summarize handles POST /summarize.
func (s *Server) Summarize(w http.ResponseWriter, r *http.Request) {
	id, ok := s.articleID(w, r)
	if !ok {
		return
	}
	summary, err := s.Articles.Summarize(r.Context(), id)
	if err != nil {
		s.articleFailure(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// articleView prefers the store's native fields.
func articleView(doc *domain.Document) any {
	if doc.Raw != nil {
		return doc.Raw
	}
	return doc
}

func (s *Server) cors(next http.Handler) http.Handler {
	allowed := s.CorsOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, a := range allowed {
			if a == "*" || a == origin {
				if a == "*" {
					origin = "*"
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		if s.Metrics != nil {
			s.Metrics.ObserveRequest(r.Method, route, ww.Status(), elapsed)
		}
		s.Logger.Info("HTTP request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDetail matches the chat endpoint's {"detail": ...} error body.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
