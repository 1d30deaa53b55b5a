// Package bipartite renders a driver to order matching as a Graphviz DOT document.
//
// Drivers form the left column and orders the right one. A matched pair is drawn as
// an edge labelled with its profit; declined drivers and unserved orders are kept as
// isolated, dashed nodes so the whole instance stays visible.
package bipartite

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/emicklei/dot"
)

var ErrEdgeIsInvalid = errors.New("edge refers to an unknown node")

// Node is one vertex of either side.
type Node struct {
	ID    string
	Label string
}

// Edge joins Left[From] to Right[To].
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Graph is a two-column graph with edges only between the columns.
type Graph struct {
	Name  string
	Left  []Node
	Right []Node
	Edges []Edge
}

// AddLeft appends a left node and returns its index.
func (g *Graph) AddLeft(id, label string) int {
	g.Left = append(g.Left, Node{ID: id, Label: label})
	return len(g.Left) - 1
}

// AddRight appends a right node and returns its index.
func (g *Graph) AddRight(id, label string) int {
	g.Right = append(g.Right, Node{ID: id, Label: label})
	return len(g.Right) - 1
}

// Connect adds an edge between existing nodes.
func (g *Graph) Connect(from, to int, weight float64) error {
	if from < 0 || from >= len(g.Left) || to < 0 || to >= len(g.Right) {
		return fmt.Errorf("%w: %d -> %d", ErrEdgeIsInvalid, from, to)
	}
	g.Edges = append(g.Edges, Edge{From: from, To: to, Weight: weight})
	return nil
}

// WriteDOT writes the graph in DOT syntax. Output depends only on the insertion
// order of nodes and edges.
func (g *Graph) WriteDOT(w io.Writer) error {
	doc, err := g.document()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc.String())
	return err
}

// String returns the DOT text, or an empty string for an inconsistent graph.
func (g *Graph) String() string {
	doc, err := g.document()
	if err != nil {
		return ""
	}
	return doc.String()
}

func (g *Graph) document() (*dot.Graph, error) {
	leftUsed := make([]bool, len(g.Left))
	rightUsed := make([]bool, len(g.Right))
	for _, e := range g.Edges {
		if e.From < 0 || e.From >= len(g.Left) || e.To < 0 || e.To >= len(g.Right) {
			return nil, fmt.Errorf("%w: %d -> %d", ErrEdgeIsInvalid, e.From, e.To)
		}
		leftUsed[e.From] = true
		rightUsed[e.To] = true
	}

	name := g.Name
	if name == "" {
		name = "matching"
	}

	doc := dot.NewGraph(dot.Undirected)
	doc.Attr("label", name)
	doc.Attr("rankdir", "LR")

	left := addColumn(doc, "drivers", "d", g.Left, leftUsed)
	right := addColumn(doc, "orders", "o", g.Right, rightUsed)
	for _, e := range g.Edges {
		doc.Edge(left[e.From], right[e.To]).Attr("label", strconv.FormatFloat(e.Weight, 'f', 2, 64))
	}

	return doc, nil
}

func addColumn(doc *dot.Graph, cluster, prefix string, nodes []Node, used []bool) []dot.Node {
	column := doc.Subgraph(cluster, dot.ClusterOption{})
	column.Attr("style", "invis")

	out := make([]dot.Node, len(nodes))
	for i, n := range nodes {
		node := column.Node(prefix + strconv.Itoa(i))
		node.Attr("shape", "box")
		node.Attr("label", n.Label)
		if n.ID != "" {
			node.Attr("tooltip", n.ID)
		}
		if !used[i] {
			node.Attr("style", "dashed")
		}
		out[i] = node
	}
	return out
}
