package layout

import (
	"fmt"
	"sync/atomic"

	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/metrics"
)

// Categorized nodes pick their fill color from the profile palette.
type Categorized interface {
	PaletteKey() string
}

// Position is a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlacedNode is one node with its coordinates.
type PlacedNode struct {
	ID       string         `json:"id"`
	ParentID string         `json:"parent_id,omitempty"`
	Level    int            `json:"level"`
	Position Position       `json:"position"`
	Color    string         `json:"color"`
	Data     hierarchy.Node `json:"data"`
}

// Edge connects a parent to a child for rendering.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Color  string `json:"color"`
	Style  string `json:"style"`
}

// Layout is the output of a single layout pass.
type Layout struct {
	View  string       `json:"view"`
	Nodes []PlacedNode `json:"nodes"`
	Edges []Edge       `json:"edges"`
}

// Positions returns node id → position.
func (l *Layout) Positions() map[string]Position {
	out := make(map[string]Position, len(l.Nodes))
	for _, n := range l.Nodes {
		out[n.ID] = n.Position
	}
	return out
}

// Place assigns coordinates to a resolved forest.
// Levels are stacked by their rank among present levels; each level is
// centered on CenterOffset. Wide subtrees may overlap their neighbours.
func Place(view string, f *hierarchy.Forest, p Profile) *Layout {
	out := &Layout{
		View:  view,
		Nodes: make([]PlacedNode, 0, f.NodeCount()),
		Edges: []Edge{},
	}
	for rank, level := range f.Levels() {
		row := f.Level(level)
		y := float64(rank)*p.VerticalSpacing + p.BaseOffset
		half := float64(len(row)-1) / 2
		for i, n := range row {
			var category string
			if c, ok := n.(Categorized); ok {
				category = c.PaletteKey()
			}
			out.Nodes = append(out.Nodes, PlacedNode{
				ID:       n.NodeID(),
				ParentID: n.ParentNodeID(),
				Level:    level,
				Position: Position{X: (float64(i)-half)*p.HorizontalSpacing + p.CenterOffset, Y: y},
				Color:    p.Color(category),
				Data:     n,
			})
			if f.HasParent(n) {
				out.Edges = append(out.Edges, Edge{
					ID:     fmt.Sprintf("edge-%s-%s", n.ParentNodeID(), n.NodeID()),
					Source: n.ParentNodeID(),
					Target: n.NodeID(),
					Color:  p.EdgeColor,
					Style:  "smoothstep",
				})
			}
		}
	}
	return out
}

// Settings is the swappable configuration of an Engine.
type Settings struct {
	Profiles         map[string]Profile       `json:"profiles"`
	OnDanglingParent hierarchy.DanglingPolicy `json:"on_dangling_parent"`
}

// Engine computes layouts with the current Settings.
type Engine struct {
	settings atomic.Pointer[Settings]
}

// NewEngine creates an Engine. Views missing from s use DefaultProfiles, and
// fields an override leaves zero take the default value for that view.
func NewEngine(s Settings) *Engine {
	e := &Engine{}
	e.Swap(s)
	return e
}

// Swap atomically replaces the settings (used on config hot-reload).
func (e *Engine) Swap(s Settings) {
	merged := DefaultProfiles()
	for view, p := range s.Profiles {
		merged[view] = p.over(merged[view])
	}
	e.settings.Store(&Settings{Profiles: merged, OnDanglingParent: s.OnDanglingParent})
}

// Profile returns the profile for view.
func (e *Engine) Profile(view string) (Profile, bool) {
	p, ok := e.settings.Load().Profiles[view]
	return p, ok
}

// Settings returns the settings currently in effect.
func (e *Engine) Settings() Settings {
	return *e.settings.Load()
}

// Compute resolves nodes and places them using view's profile.
func (e *Engine) Compute(view string, nodes []hierarchy.Node) (*Layout, error) {
	s := e.settings.Load()
	p, ok := s.Profiles[view]
	if !ok {
		metrics.LayoutComputations.WithLabelValues(view, "error").Inc()
		return nil, fmt.Errorf("layout: unknown view %q", view)
	}
	f, err := hierarchy.Resolve(nodes, hierarchy.Options{OnDanglingParent: s.OnDanglingParent})
	if err != nil {
		metrics.LayoutComputations.WithLabelValues(view, "error").Inc()
		return nil, fmt.Errorf("layout %s: %w", view, err)
	}
	l := Place(view, f, p)
	metrics.LayoutComputations.WithLabelValues(view, "success").Inc()
	metrics.LayoutNodes.WithLabelValues(view).Set(float64(len(l.Nodes)))
	return l, nil
}
