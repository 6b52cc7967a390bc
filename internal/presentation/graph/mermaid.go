package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/workflow"
)

// Overlay highlights a session's position on the workflow graph.
type Overlay struct {
	Current domain.Stage
}

// GenerateMermaid produces a Mermaid flowchart of the workflow edges.
// Idle is drawn as a circle, stages waiting for user input as parallelograms.
// Edges that call the generation service are labeled with the prompt they render.
func GenerateMermaid(edges []workflow.Edge, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	seen := make(map[domain.Stage]bool)
	declare := func(s domain.Stage) {
		if seen[s] {
			return
		}
		seen[s] = true
		opener, closer := "[/", "/]"
		if s == domain.StageIdle {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(string(s)), opener, s, closer))
	}

	for _, e := range edges {
		declare(e.From)
		declare(e.To)

		label := strings.ReplaceAll(e.Trigger, "\"", "'")
		if e.Prompt != "" {
			label = fmt.Sprintf("%s <br/> 🤖 %s", label, e.Prompt)
		}
		arrow := "-->"
		if label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(string(e.From)), arrow, sanitizeMermaidID(string(e.To))))
	}

	if overlay != nil && overlay.Current != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.Current))))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
