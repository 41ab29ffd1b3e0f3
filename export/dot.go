package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emicklei/dot"
)

// StartNode is the id of the invisible node whose arrow marks the start state
const StartNode = "__start"

// NewDOT builds d as a Graphviz digraph. Accept states are double circles,
// the start state has an incoming arrow from StartNode, and edges carry
// "symbol" or "symbol/output" labels. Epsilon edges are dashed.
func NewDOT(d *Diagram) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.ID(strconv.Quote(d.ID))
	g.Attr("rankdir", "LR")

	start := g.Node(StartNode).Attr("shape", "point").Label("")
	for _, s := range d.States {
		n := g.Node(s.Name).Attr("shape", "circle")
		if s.Accept {
			n.Attr("shape", "doublecircle")
		}
		if s.Emit != "" {
			n.Label(s.Name + "/" + s.Emit)
		}
	}
	g.Edge(start, g.Node(d.Start))

	for _, e := range d.Edges {
		label := e.Symbol
		if e.Emit != "" {
			label += "/" + e.Emit
		}
		for _, to := range e.To {
			edge := g.Edge(g.Node(e.From), g.Node(to), label)
			if e.Epsilon {
				edge.Dashed()
			}
		}
	}
	return g
}

// WriteDOT writes d as a Graphviz digraph
func WriteDOT(w io.Writer, d *Diagram) error {
	if _, err := io.WriteString(w, NewDOT(d).String()); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}
