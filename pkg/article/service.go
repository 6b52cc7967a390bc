// Package article serves article details and AI summaries from the document store.
package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// Fallback texts when an article has nothing to summarize.
const (
	NoContentToSummarize = "No content to summarize."
	NoDataToSummarize    = "No data to summarize."
)

// Extracted lists the fields fed to the summary prompt.
type Extracted struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	CombinedText    string `json:"combined_text"`
}

// Report is the full article view with its AI summary.
type Report struct {
	Document  *domain.Document
	Extracted Extracted
	AISummary string
}

// Summary is the short title and summary view.
type Summary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Service answers article queries.
type Service struct {
	docs   ports.DocumentLookup
	gen    ports.Generator
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger configures a logger for the Service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an article service.
func NewService(docs ports.DocumentLookup, gen ports.Generator, opts ...Option) *Service {
	s := &Service{
		docs:   docs,
		gen:    gen,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Details returns the article as stored.
func (s *Service) Details(ctx context.Context, id string) (*domain.Document, error) {
	s.logger.Info("Looking up article", "article_id", id)
	doc, err := s.docs.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", id, err)
	}
	return doc, nil
}

// SummaryReport returns the article, the fields it was summarized from and the summary.
func (s *Service) SummaryReport(ctx context.Context, id string) (*Report, error) {
	doc, err := s.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	combined := doc.SummaryText()
	report := &Report{
		Document: doc,
		Extracted: Extracted{
			Title:           doc.Title,
			MetaDescription: doc.MetaDescription,
			CombinedText:    combined,
		},
		AISummary: NoContentToSummarize,
	}
	if combined != "" {
		s.logger.Info("Generating summary for article", "article_id", id)
		report.AISummary = s.gen.Generate(ctx, domain.PromptSummary, map[string]string{
			domain.VarText: combined,
		}).Reply()
	}
	return report, nil
}

// Summarize returns only the title and summary.
func (s *Service) Summarize(ctx context.Context, id string) (*Summary, error) {
	doc, err := s.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &Summary{Title: doc.Title, Summary: NoDataToSummarize}
	if combined := doc.SummaryText(); combined != "" {
		out.Summary = s.gen.Generate(ctx, domain.PromptSummary, map[string]string{
			domain.VarText: combined,
		}).Reply()
	}
	return out, nil
}

// Ping reports document store connectivity when the store supports it.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.docs.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
