package diagram

import (
	"fmt"
	"strconv"
	"strings"

	"callflow-studio/internal/callrouting"
)

// Node labels.
const (
	LabelIncomingCall   = "Incoming Call"
	LabelCallRecording  = "Call Recording Message"
	LabelCallForwarding = "Call Forwarding"
	LabelPhoneTree      = "Phone Tree"
	LabelAssignees      = "Assignees"
	LabelManagers       = "Managers"
	LabelSIP            = "SIP"
	LabelSequentialCall = "Sequential Call"

	BlockedEdgeLabel         = "X"
	NoSequentialNumbersError = "No Seq Call Numbers"
)

// Layout turns a configuration into a call-flow graph.
//
// Nodes sit on a grid: column 0 is the center line, assignees and managers
// move one column left and right when both exist. Each stage advances a
// logical row counter that also provides node ids; a stage can draw its node
// on an earlier visual row so side-by-side branches line up.
type Layout struct {
	Offset int
}

func NewLayout(offset int) Layout {
	if offset <= 0 {
		offset = DefaultOffset
	}
	return Layout{Offset: offset}
}

// Build is pure: the same configuration always yields the same graph.
// A nil configuration yields an empty graph.
func (l Layout) Build(cfg *callrouting.Configuration) Graph {
	if cfg == nil {
		return Graph{Nodes: []Node{}, Edges: []Edge{}}
	}
	offset := l.Offset
	if offset <= 0 {
		offset = DefaultOffset
	}

	b := &builder{offset: offset}
	b.add(0, b.row, NodeData{Label: LabelIncomingCall})

	if cfg.CallRecordingEnabled() {
		b.row++
		b.add(0, b.row, NodeData{Label: LabelCallRecording})
		b.connect(b.row-1, b.row, "")
	}

	switch cfg.RoutingType() {
	case callrouting.ModeCallForwarding:
		b.row++
		b.add(0, b.row, NodeData{Label: LabelCallForwarding, Subtitle: cfg.ForwardTo()})
		b.connect(b.row-1, b.row, "")
		return b.graph()
	case callrouting.ModePhoneTree:
		b.row++
		b.add(0, b.row, NodeData{Label: LabelPhoneTree})
		b.connect(b.row-1, b.row, "")
		return b.graph()
	}

	hasAssignees, hasManagers := cfg.HasAssignees(), cfg.HasManagers()
	both := hasAssignees && hasManagers

	if hasAssignees {
		b.row++
		col := 0
		if hasManagers {
			col = -1
		}
		b.add(col, b.row, NodeData{Label: LabelAssignees, Subtitle: strings.Join(cfg.Assignees(), ", ")})
		b.connect(b.row-1, b.row, "")
	}

	if hasManagers {
		b.row++
		col, visual, from := 0, b.row, b.row-1
		if hasAssignees {
			col, visual, from = 1, b.row-1, b.row-2
		}
		allowed := cfg.ManagersAllowedToGetCall()
		b.addAt(col, b.row, visual, NodeData{
			Label:    LabelManagers,
			Subtitle: strings.Join(cfg.Managers(), ", "),
			Dimmed:   !allowed,
		})
		label := ""
		if !allowed {
			label = BlockedEdgeLabel
		}
		b.connect(from, b.row, label)
	}

	switch cfg.RoutingType() {
	case callrouting.ModeSIP:
		b.row++
		b.addAt(0, b.row, b.joinRow(both), NodeData{Label: LabelSIP})
		b.connectJoin(both)
		return b.graph()

	case callrouting.ModeSequentialCall:
		numbers := cfg.SequentialCallNumbers()
		b.row++
		head := b.row
		visual := b.joinRow(both)
		data := NodeData{Label: LabelSequentialCall}
		if len(numbers) == 0 {
			data.ErrorText = NoSequentialNumbersError
		}
		b.addAt(0, head, visual, data)
		b.connectJoin(both)

		for i, number := range numbers {
			row := head + i + 1
			b.addAt(0, row, visual+i+1, NodeData{Label: fmt.Sprintf("Seq Call %d", i+1), Subtitle: number})
			b.connect(row-1, row, "")
		}
		b.row += len(numbers)
	}

	return b.graph()
}

type builder struct {
	offset int
	row    int
	nodes  []Node
	edges  []Edge
}

func (b *builder) add(col, row int, data NodeData) {
	b.addAt(col, row, row, data)
}

// addAt places logical row `row` at visual row `visual`.
func (b *builder) addAt(col, row, visual int, data NodeData) {
	b.nodes = append(b.nodes, Node{
		ID:       strconv.Itoa(row),
		Position: Position{X: col * b.offset, Y: visual * b.offset},
		Type:     NodeTypeCustom,
		Data:     data,
	})
}

func (b *builder) connect(from, to int, label string) {
	src, dst := strconv.Itoa(from), strconv.Itoa(to)
	b.edges = append(b.edges, Edge{
		ID:       "e" + src + "-" + dst,
		Source:   src,
		Target:   dst,
		Animated: true,
		Label:    label,
	})
}

// joinRow is the visual row of a terminal stage: directly under the shared
// assignees/managers row when both exist.
func (b *builder) joinRow(both bool) int {
	if both {
		return b.row - 1
	}
	return b.row
}

// connectJoin wires the current row from both branches, or from the previous row.
func (b *builder) connectJoin(both bool) {
	if both {
		b.connect(b.row-2, b.row, "")
	}
	b.connect(b.row-1, b.row, "")
}

func (b *builder) graph() Graph {
	g := Graph{Nodes: b.nodes, Edges: b.edges}
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return g
}
