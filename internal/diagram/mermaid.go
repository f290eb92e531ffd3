package diagram

import (
	"fmt"
	"strings"
)

// Mermaid renders g as a Mermaid flowchart for docs and terminals.
// Shapes:
// - Incoming call: ((Circle))
// - Sequential call numbers: [/Parallelogram/]
// - Default: [Rectangle]
// Dimmed nodes and nodes with error text get their own classes.
func Mermaid(g Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var dimmed, failed []string
	for _, n := range g.Nodes {
		id := mermaidID(n.ID)

		opener, closer := "[", "]"
		switch {
		case n.Data.Label == LabelIncomingCall:
			opener, closer = "((", "))"
		case strings.HasPrefix(n.Data.Label, "Seq Call "):
			opener, closer = "[/", "/]"
		}

		text := escapeMermaid(n.Data.Label)
		if n.Data.Subtitle != "" {
			text += "<br/>" + escapeMermaid(n.Data.Subtitle)
		}
		if n.Data.ErrorText != "" {
			text += "<br/>" + escapeMermaid(n.Data.ErrorText)
			failed = append(failed, id)
		}
		if n.Data.Dimmed {
			dimmed = append(dimmed, id)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, text, closer)
	}

	for _, e := range g.Edges {
		arrow := "-->"
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeMermaid(e.Label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", mermaidID(e.Source), arrow, mermaidID(e.Target))
	}

	if len(dimmed) > 0 || len(failed) > 0 {
		sb.WriteString("\n    classDef dimmed fill:#eeeeee,stroke:#9e9e9e,color:#9e9e9e;\n")
		sb.WriteString("    classDef failed fill:#ffebee,stroke:#c62828,color:#000;\n")
		for _, id := range dimmed {
			fmt.Fprintf(&sb, "    class %s dimmed;\n", id)
		}
		for _, id := range failed {
			fmt.Fprintf(&sb, "    class %s failed;\n", id)
		}
	}
	return sb.String()
}

// Node ids are digits, which Mermaid accepts only with a prefix.
func mermaidID(id string) string { return "n" + id }

func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
