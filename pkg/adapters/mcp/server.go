// Package mcp exposes the chat router and article summaries as Model Context Protocol tools.
package mcp

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
	"github.com/aretw0/scribe/pkg/workflow"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WorkflowURI is the resource describing the article writer transitions.
const WorkflowURI = "scribe://workflow"

// ChatResult is the structured output of the chat tool.
type ChatResult struct {
	SessionID string `json:"session_id" jsonschema_description:"Session the reply belongs to"`
	Response  string `json:"response" jsonschema_description:"Reply text, Markdown"`
	Route     string `json:"route" jsonschema_description:"Handler that produced the reply"`
	Closed    bool   `json:"closed" jsonschema_description:"True when the session was closed after a completed article"`
}

// Responder is the chat entry point (implemented by *chat.Router).
type Responder interface {
	Respond(ctx context.Context, sessionID, message string, opts ...chat.RespondOption) (chat.Reply, error)
}

// Summarizer produces article summaries (implemented by *article.Service).
type Summarizer interface {
	Summarize(ctx context.Context, id string) (*article.Summary, error)
}

// Server exposes scribe as an MCP server.
type Server struct {
	router     Responder
	summarizer Summarizer
	logger     *slog.Logger
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSummarizer enables the summarize_article tool.
func WithSummarizer(sum Summarizer) Option {
	return func(s *Server) {
		s.summarizer = sum
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(router Responder, version string, opts ...Option) *Server {
	s := &Server{
		router:    router,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("scribe-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the article assistant. Greet it, ask about the article, or say 'write a new article' to start the guided writer."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation identifier; reuse it across turns")),
		mcp.WithString("message", mcp.Required(), mcp.Description("User message")),
		mcp.WithString("article_id", mcp.Description("Article to answer about (optional)")),
		mcp.WithOutputSchema[ChatResult](),
	)
	s.mcpServer.AddTool(chatTool, mcp.NewStructuredToolHandler(s.handleChat))

	if s.summarizer != nil {
		summarizeTool := mcp.NewTool("summarize_article",
			mcp.WithDescription("Summarize an article's title and meta description in a few bullet points."),
			mcp.WithString("article_id", mcp.Required(), mcp.Description("Article identifier")),
			mcp.WithOutputSchema[article.Summary](),
		)
		s.mcpServer.AddTool(summarizeTool, mcp.NewStructuredToolHandler(s.handleSummarize))
	}
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ChatResult, error) {
	sessionID, _ := args["session_id"].(string)
	message, _ := args["message"].(string)
	articleID, _ := args["article_id"].(string)
	if sessionID == "" || message == "" {
		return ChatResult{}, errors.New("session_id and message are required")
	}

	clean, err := chat.SanitizeInput(message)
	if err != nil {
		s.logger.Warn("MCP chat: input rejected", "err", err, "size", len(message))
		return ChatResult{}, fmt.Errorf("input rejected: %w", err)
	}

	reply, err := s.router.Respond(ctx, sessionID, clean, chat.WithArticle(articleID))
	if err != nil {
		return ChatResult{}, fmt.Errorf("chat failed: %w", err)
	}
	return ChatResult{
		SessionID: reply.SessionID,
		Response:  reply.Text,
		Route:     string(reply.Route),
		Closed:    reply.Closed,
	}, nil
}

func (s *Server) handleSummarize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (article.Summary, error) {
	id, _ := args["article_id"].(string)
	if id == "" {
		return article.Summary{}, errors.New("article_id is required")
	}
	sum, err := s.summarizer.Summarize(ctx, id)
	if err != nil {
		return article.Summary{}, fmt.Errorf("summarize failed: %w", err)
	}
	return *sum, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(WorkflowURI, "Article writer workflow",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(workflow.Edges())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      WorkflowURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
