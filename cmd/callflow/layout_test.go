package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"callflow-studio/internal/callrouting"
	"callflow-studio/internal/diagram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunLayout_DefaultSnapshot(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLayout(nil, &out, "", layoutOptions{format: "json", offset: diagram.DefaultOffset}))

	var g diagram.Graph
	require.NoError(t, json.Unmarshal(out.Bytes(), &g))
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, diagram.LabelIncomingCall, g.Nodes[0].Data.Label)
}

func TestRunLayout_YAMLSnapshotWithOps(t *testing.T) {
	path := writeFile(t, "routing.yaml", `
assignees: [Ana]
managers: []
are_managers_allowed_to_get_call: true
is_sequential_call_enabled: true
sequential_call_numbers: ["+1"]
`)
	var out bytes.Buffer
	err := runLayout(nil, &out, path, layoutOptions{
		ops:    []string{"add-sequential-call-number", "toggle-call-recording"},
		format: "json",
		offset: 100,
	})
	require.NoError(t, err)

	var g diagram.Graph
	require.NoError(t, json.Unmarshal(out.Bytes(), &g))
	labels := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		labels = append(labels, n.Data.Label)
	}
	assert.Equal(t, []string{
		diagram.LabelIncomingCall,
		diagram.LabelCallRecording,
		diagram.LabelAssignees,
		diagram.LabelSequentialCall,
		"Seq Call 1",
		"Seq Call 2",
	}, labels)
	assert.Equal(t, "+918851641853", g.Nodes[5].Data.Subtitle)
	assert.Equal(t, 500, g.Nodes[5].Position.Y)
}

func TestRunLayout_JSONFromStdinAsSnapshot(t *testing.T) {
	stdin := strings.NewReader(`{"assignees":["A"],"is_phone_tree_enabled":true}`)
	var out bytes.Buffer
	err := runLayout(stdin, &out, "-", layoutOptions{mode: "sip", format: "snapshot"})
	require.NoError(t, err)

	var s callrouting.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.True(t, s.IsSipEnabled)
	assert.False(t, s.IsPhoneTreeEnabled)
}

func TestRunLayout_Mermaid(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLayout(nil, &out, "", layoutOptions{format: "mermaid", ops: []string{"toggle-call-forwarding"}}))
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "Call Forwarding<br/>+918851641823")
}

func TestRunLayout_Errors(t *testing.T) {
	conflicting := writeFile(t, "bad.json", `{"is_sip_enabled": true, "is_phone_tree_enabled": true}`)

	cases := []struct {
		name string
		path string
		opts layoutOptions
		want error
	}{
		{"unknown op", "", layoutOptions{format: "json", ops: []string{"nope"}}, callrouting.ErrUnknownOperation},
		{"conflicting modes", conflicting, layoutOptions{format: "json"}, callrouting.ErrConflictingModes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runLayout(nil, &bytes.Buffer{}, tc.path, tc.opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Error(t, runLayout(nil, &bytes.Buffer{}, "", layoutOptions{format: "svg"}))
	assert.Error(t, runLayout(nil, &bytes.Buffer{}, "", layoutOptions{format: "json", mode: "fax"}))
	assert.Error(t, runLayout(nil, &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yaml"), layoutOptions{format: "json"}))
}

func TestRunLayout_CustomDefaults(t *testing.T) {
	defaults := writeFile(t, "defaults.yaml", `
assignees: [Ana, Bo]
managers: [Cy]
forward_to: "+15550000"
sequential_numbers: ["+1"]
`)
	var out bytes.Buffer
	err := runLayout(nil, &out, "", layoutOptions{format: "snapshot", defaults: defaults, ops: []string{"toggle-call-forwarding"}})
	require.NoError(t, err)

	var s callrouting.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, []string{"Ana", "Bo"}, s.Assignees)
	assert.Equal(t, "+15550000", s.ForwardTo)
}

func TestRunValidate(t *testing.T) {
	good := writeFile(t, "good.yaml", "assignees: [A]\nis_sip_enabled: true\n")
	var out bytes.Buffer
	require.NoError(t, runValidate(nil, &out, good, ""))
	assert.Contains(t, out.String(), "routing sip")

	bad := writeFile(t, "bad.yaml", "is_sequential_call_enabled: true\nsequential_call_numbers: [a, b, c, d]\n")
	assert.ErrorIs(t, runValidate(nil, &out, bad, ""), callrouting.ErrTooManySequentialNumbers)
}
