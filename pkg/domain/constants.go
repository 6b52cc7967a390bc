package domain

// PromptID identifies a prompt the generation collaborator must support.
type PromptID string

const (
	PromptSummary           PromptID = "summary"           // vars: text
	PromptSuggestTopics     PromptID = "suggestTopics"     // vars: text
	PromptQuestionAnswering PromptID = "questionAnswering" // vars: text, question
	PromptGenerateTitles    PromptID = "generateTitles"    // vars: description
	PromptGenerateBlogIdeas PromptID = "generateBlogIdeas" // vars: title, description
	PromptGenerateArticle   PromptID = "generateArticle"   // vars: description, title, blog_idea
)

// Substitution variable names used by the prompts.
const (
	VarText        = "text"
	VarQuestion    = "question"
	VarDescription = "description"
	VarTitle       = "title"
	VarBlogIdea    = "blog_idea"
)

// Intent is the classified purpose of a message that no workflow claimed.
type Intent string

const (
	IntentSummary Intent = "summary"
	IntentTopic   Intent = "topic"
	IntentQA      Intent = "qa"
)

// Route names the handler that produced a reply.
type Route string

const (
	RouteGreeting Route = "greeting"
	RouteWorkflow Route = "workflow"
	RouteSummary  Route = "summary"
	RouteTopic    Route = "topic"
	RouteQA       Route = "qa"
)

// RouteFor maps a fallback intent to its route label.
func RouteFor(i Intent) Route {
	switch i {
	case IntentSummary:
		return RouteSummary
	case IntentTopic:
		return RouteTopic
	default:
		return RouteQA
	}
}

// CompletionMarker is the canonical text that signals a finished article.
// A reply carrying it on an idle session triggers session teardown.
const CompletionMarker = "Here is your complete article"
