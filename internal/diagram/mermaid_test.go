package diagram

import (
	"strings"
	"testing"

	"callflow-studio/internal/callrouting"
)

func TestMermaid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*callrouting.Snapshot)
		contains []string
		absent   []string
	}{
		{
			name: "default flow",
			contains: []string{
				"graph TD\n",
				`n0(("Incoming Call"))`,
				`n1["Assignees<br/>Manuk, Tejinder"]`,
				"n0 --> n1",
				"n0 --> n2",
			},
			absent: []string{"classDef"},
		},
		{
			name: "blocked managers",
			mutate: func(s *callrouting.Snapshot) {
				s.AreManagersAllowedToGetCall = false
			},
			contains: []string{
				`n0 -- "X" --> n2`,
				"class n2 dimmed;",
			},
		},
		{
			name: "sequential call without numbers",
			mutate: func(s *callrouting.Snapshot) {
				s.IsSequentialCallEnabled = true
			},
			contains: []string{
				`n3["Sequential Call<br/>No Seq Call Numbers"]`,
				"class n3 failed;",
			},
		},
		{
			name: "sequential call numbers",
			mutate: func(s *callrouting.Snapshot) {
				s.IsSequentialCallEnabled = true
				s.SequentialCallNumbers = []string{"+1"}
			},
			contains: []string{
				`n4[/"Seq Call 1<br/>+1"/]`,
				"n3 --> n4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mermaid(NewLayout(DefaultOffset).Build(mustConfig(t, tt.mutate)))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("did not expect %q in:\n%s", bad, got)
				}
			}
		})
	}
}

func TestMermaid_EscapesQuotes(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "0", Data: NodeData{Label: `say "hi"`}}}}
	if got := Mermaid(g); !strings.Contains(got, `n0["say 'hi'"]`) {
		t.Fatalf("expected escaped label, got %s", got)
	}
}
