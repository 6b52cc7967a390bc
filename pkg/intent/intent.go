// Package intent classifies free text when no workflow owns the conversation.
package intent

import (
	"regexp"
	"strings"

	"github.com/aretw0/scribe/pkg/domain"
)

var greetingPattern = regexp.MustCompile(`^\s*(hi|hello|hey)\b`)

// IsGreeting reports whether the message opens with "hi", "hello" or "hey" as a whole word.
func IsGreeting(msg string) bool {
	return greetingPattern.MatchString(strings.ToLower(msg))
}

// StartsWorkflow reports whether the message asks to begin the article writer.
func StartsWorkflow(msg string) bool {
	lower := strings.ToLower(strings.TrimSpace(msg))
	return strings.Contains(lower, "write") || strings.Contains(lower, "new article")
}

// Classify maps free text to an intent. It is total: qa is the fallback.
// The summary check runs first, so it wins when both keyword families appear.
func Classify(msg string) domain.Intent {
	lower := strings.ToLower(strings.TrimSpace(msg))
	switch {
	case strings.Contains(lower, "summary") || strings.Contains(lower, "summarize"):
		return domain.IntentSummary
	case strings.Contains(lower, "topic") || strings.Contains(lower, "suggest"):
		return domain.IntentTopic
	default:
		return domain.IntentQA
	}
}
