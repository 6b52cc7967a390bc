package domain

import "fmt"

// Generation is the outcome of a call to the generation collaborator.
// Failures are data, not control flow: Reply renders them as user-visible text.
type Generation struct {
	Text string
	Err  error
}

// Generated wraps a successful generation.
func Generated(text string) Generation {
	return Generation{Text: text}
}

// GenerationFailed wraps a failed generation.
func GenerationFailed(err error) Generation {
	return Generation{Err: err}
}

// OK reports whether the generation succeeded.
func (g Generation) OK() bool {
	return g.Err == nil
}

// Reply returns the text to show the user.
func (g Generation) Reply() string {
	if g.Err != nil {
		return fmt.Sprintf("⚠️ An error occurred with the generation service: %v", g.Err)
	}
	return g.Text
}
