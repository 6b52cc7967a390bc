package domain

import "strings"

// Document is an article served by the document store.
type Document struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Body            string `json:"body"`

	// Raw keeps the store's native fields for detail views.
	Raw map[string]any `json:"raw,omitempty"`
}

// SummaryText joins title and meta description, the input used by the summary endpoints.
func (d *Document) SummaryText() string {
	return strings.TrimSpace(d.Title + " " + d.MetaDescription)
}

// Text is the article under discussion for chat: the body, or the summary text when there is none.
func (d *Document) Text() string {
	if strings.TrimSpace(d.Body) != "" {
		return d.Body
	}
	return d.SummaryText()
}
