package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains simulation data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentStates []string
}

// OverlayFromSteps marks every state a trace went through, and the states
// active at step index as current.
func OverlayFromSteps(steps []domain.SimulationStep, index int) *GraphOverlay {
	if len(steps) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(steps) {
		index = len(steps) - 1
	}
	overlay := &GraphOverlay{CurrentStates: steps[index].StateIDs()}
	for _, step := range steps[:index+1] {
		overlay.VisitedStates = append(overlay.VisitedStates, step.StateIDs()...)
	}
	return overlay
}

// LabelFunc renders a transition payload as an edge label.
type LabelFunc func(domain.Transition) string

// GenerateMermaid produces a Mermaid flowchart of the snapshot.
// It applies semantic styling:
// - Final: (((Double circle)))
// - Default: ((Circle))
// - Initial: an arrow from an invisible start point
// Moore states show their output as "label / output".
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(snap *domain.Snapshot, label LabelFunc, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, st := range snap.States {
		safeID := sanitizeMermaidID(st.ID)

		opener, closer := "((", "))"
		if st.IsFinal {
			opener, closer = "(((", ")))"
		}

		text := st.Label
		if text == "" {
			text = st.ID
		}
		if snap.Type == domain.KindMoore {
			text = fmt.Sprintf("%s / %s", text, st.Output)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(text), closer))

		if st.IsInitial {
			start := "start_" + safeID
			sb.WriteString(fmt.Sprintf("    %s[ ]:::hidden --> %s\n", start, safeID))
		}
	}

	for _, t := range snap.Transitions {
		text := ""
		if label != nil {
			text = label(t)
		}
		from, to := sanitizeMermaidID(t.From), sanitizeMermaidID(t.To)
		if text == "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, escape(text), to))
	}

	sb.WriteString("    classDef hidden display:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on the light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := make(map[string]bool)
		for _, id := range overlay.CurrentStates {
			current[sanitizeMermaidID(id)] = true
		}

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || visited[safeID] || current[safeID] {
				continue
			}
			visited[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
		}
		for _, id := range overlay.CurrentStates {
			if safeID := sanitizeMermaidID(id); safeID != "" {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", safeID))
			}
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
