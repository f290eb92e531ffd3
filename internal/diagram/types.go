package diagram

import (
	"errors"
	"fmt"
)

// DefaultOffset is the pixel spacing between grid cells.
const DefaultOffset = 150

// NodeTypeCustom is the renderer node component used for every node.
const NodeTypeCustom = "custom"

// Position is a screen coordinate in pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NodeData is the display payload read by the renderer's custom node.
type NodeData struct {
	Label     string `json:"label"`
	Subtitle  string `json:"subTitle,omitempty"`
	ErrorText string `json:"error,omitempty"`
	Dimmed    bool   `json:"disabled,omitempty"`
}

// Node is a diagram vertex. ID is the stringified logical row.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Type     string   `json:"type"`
	Data     NodeData `json:"data"`
}

// Edge is a directed connector between two nodes.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated"`
	Label    string `json:"label,omitempty"`
}

// Graph is the renderer input: nodes in layout order plus edges.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Bounds is the box spanned by node positions.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

var (
	ErrDuplicateNode = errors.New("diagram: duplicate node id")
	ErrDanglingEdge  = errors.New("diagram: edge references unknown or later node")
)

// Validate checks that node ids are unique and that every edge points from
// and to nodes emitted earlier in the list.
func (g Graph) Validate() error {
	order := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := order[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		order[n.ID] = i
	}
	for _, e := range g.Edges {
		src, ok := order[e.Source]
		if !ok {
			return fmt.Errorf("%w: %s", ErrDanglingEdge, e.ID)
		}
		dst, ok := order[e.Target]
		if !ok || src >= dst {
			return fmt.Errorf("%w: %s", ErrDanglingEdge, e.ID)
		}
	}
	return nil
}

// Bounds returns the zero box for an empty graph.
func (g Graph) Bounds() Bounds {
	if len(g.Nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: g.Nodes[0].Position.X, MaxX: g.Nodes[0].Position.X,
		MinY: g.Nodes[0].Position.Y, MaxY: g.Nodes[0].Position.Y,
	}
	for _, n := range g.Nodes[1:] {
		b.MinX = min(b.MinX, n.Position.X)
		b.MaxX = max(b.MaxX, n.Position.X)
		b.MinY = min(b.MinY, n.Position.Y)
		b.MaxY = max(b.MaxY, n.Position.Y)
	}
	return b
}

// Node looks a node up by id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
