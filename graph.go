// The MIT License (MIT)

// Copyright (c) 2016, 2017 Fabian Wenzelmann

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package goel

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// HierarchyNode is an equivalence class of the subsumption hierarchy: all
// its concepts subsume each other.
type HierarchyNode struct {
	id       int64
	concepts []Concept
	parents  []*HierarchyNode
	children []*HierarchyNode
}

// ID implements gonum's graph.Node.
func (n *HierarchyNode) ID() int64 {
	return n.id
}

// Concepts returns the concepts of the class ordered by CompareConcepts.
func (n *HierarchyNode) Concepts() []Concept {
	return append([]Concept(nil), n.concepts...)
}

// Representative returns the smallest concept of the class, ⊤ for the top
// node and ⊥ for the bottom node.
func (n *HierarchyNode) Representative() Concept {
	return n.concepts[0]
}

// Contains reports whether c belongs to the class.
func (n *HierarchyNode) Contains(c Concept) bool {
	return slices.Contains(n.concepts, c)
}

// Parents returns the direct subsumers.
func (n *HierarchyNode) Parents() []*HierarchyNode {
	return append([]*HierarchyNode(nil), n.parents...)
}

// Children returns the direct subsumees.
func (n *HierarchyNode) Children() []*HierarchyNode {
	return append([]*HierarchyNode(nil), n.children...)
}

func (n *HierarchyNode) String() string {
	strs := make([]string, len(n.concepts))
	for i, c := range n.concepts {
		strs[i] = c.String()
	}
	return fmt.Sprintf("{%s}", strings.Join(strs, ", "))
}

// Hierarchy is the classification result: the Hasse diagram of the
// subsumption order over the concept names of an ontology.
//
// The top node contains ⊤ and all names equivalent to ⊤, the bottom node
// contains ⊥ and all unsatisfiable names. If ⊤ itself is unsatisfiable both
// are the same node.
type Hierarchy struct {
	top, bottom *HierarchyNode
	nodes       []*HierarchyNode
	byConcept   map[Concept]*HierarchyNode
	// down has an edge from each node to its children, up is the reverse
	down, up *simple.DirectedGraph
}

// subsumptionOracle is what the hierarchy needs from a saturation: the
// visible subsumers of a name or ⊤ (including itself), and whether B ∈ S(A).
type subsumptionOracle interface {
	subsumersOf(c Concept) []Concept
	subsumes(c, d Concept) bool
}

// buildHierarchy groups names into equivalence classes and computes the
// direct subsumers of each class. names must be sorted by CompareConcepts.
func buildHierarchy(names []Concept, oracle subsumptionOracle) *Hierarchy {
	h := &Hierarchy{
		byConcept: make(map[Concept]*HierarchyNode, len(names)+2),
		down:      simple.NewDirectedGraph(),
		up:        simple.NewDirectedGraph(),
	}
	newNode := func(concepts []Concept) *HierarchyNode {
		n := &HierarchyNode{id: int64(len(h.nodes)), concepts: concepts}
		h.nodes = append(h.nodes, n)
		for _, c := range concepts {
			h.byConcept[c] = n
		}
		h.down.AddNode(n)
		h.up.AddNode(n)
		return n
	}
	if oracle.subsumes(Top, Bottom) {
		// everything is unsatisfiable
		all := append([]Concept{Top, Bottom}, names...)
		h.top = newNode(all)
		h.bottom = h.top
		return h
	}
	topClass := []Concept{Top}
	bottomClass := []Concept{Bottom}
	for _, name := range names {
		switch {
		case oracle.subsumes(name, Bottom):
			bottomClass = append(bottomClass, name)
		case oracle.subsumes(Top, name):
			topClass = append(topClass, name)
		}
	}
	h.top = newNode(topClass)
	for _, name := range names {
		if _, done := h.byConcept[name]; done || oracle.subsumes(name, Bottom) {
			continue
		}
		class := []Concept{name}
		for _, d := range oracle.subsumersOf(name) {
			if d != name && d.Kind() == NameKind && oracle.subsumes(d, name) {
				class = append(class, d)
			}
		}
		sortConcepts(class)
		newNode(class)
	}
	// direct parents: a candidate P is dropped if another candidate Q is
	// subsumed by P
	for _, n := range h.nodes[1:] {
		candidates := []*HierarchyNode{h.top}
		for _, d := range oracle.subsumersOf(n.Representative()) {
			p, has := h.byConcept[d]
			if !has || p == n || slices.Contains(candidates, p) {
				continue
			}
			candidates = append(candidates, p)
		}
		for _, p := range candidates {
			direct := true
			for _, q := range candidates {
				if q != p && oracle.subsumes(q.Representative(), p.Representative()) {
					direct = false
					break
				}
			}
			if direct {
				h.setEdge(p, n)
			}
		}
	}
	h.bottom = newNode(bottomClass)
	for _, n := range h.nodes {
		if n != h.bottom && len(n.children) == 0 {
			h.setEdge(n, h.bottom)
		}
	}
	for _, n := range h.nodes {
		slices.SortFunc(n.parents, compareNodes)
		slices.SortFunc(n.children, compareNodes)
	}
	return h
}

func compareNodes(a, b *HierarchyNode) int {
	return CompareConcepts(a.Representative(), b.Representative())
}

func (h *Hierarchy) setEdge(parent, child *HierarchyNode) {
	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
	h.down.SetEdge(h.down.NewEdge(parent, child))
	h.up.SetEdge(h.up.NewEdge(child, parent))
}

// Top returns the root node.
func (h *Hierarchy) Top() *HierarchyNode {
	return h.top
}

// Bottom returns the leaf node.
func (h *Hierarchy) Bottom() *HierarchyNode {
	return h.bottom
}

// Nodes returns all nodes, the top node first and the bottom node last.
func (h *Hierarchy) Nodes() []*HierarchyNode {
	return append([]*HierarchyNode(nil), h.nodes...)
}

// Len returns the number of nodes.
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Node returns the node of the concept.
func (h *Hierarchy) Node(c Concept) (*HierarchyNode, error) {
	n, has := h.byConcept[c]
	if !has {
		return nil, &UnknownConceptError{Name: c.String()}
	}
	return n, nil
}

func flatten(nodes []*HierarchyNode) []Concept {
	var res []Concept
	for _, n := range nodes {
		res = append(res, n.concepts...)
	}
	sortConcepts(res)
	return res
}

// DirectSubsumers returns the concepts of all parent nodes of c.
func (h *Hierarchy) DirectSubsumers(c Concept) ([]Concept, error) {
	n, err := h.Node(c)
	if err != nil {
		return nil, err
	}
	return flatten(n.parents), nil
}

// DirectSubsumees returns the concepts of all child nodes of c.
func (h *Hierarchy) DirectSubsumees(c Concept) ([]Concept, error) {
	n, err := h.Node(c)
	if err != nil {
		return nil, err
	}
	return flatten(n.children), nil
}

// Equivalents returns all concepts equivalent to c, including c.
func (h *Hierarchy) Equivalents(c Concept) ([]Concept, error) {
	n, err := h.Node(c)
	if err != nil {
		return nil, err
	}
	return n.Concepts(), nil
}

func (h *Hierarchy) reachable(g graph.Graph, from *HierarchyNode) []*HierarchyNode {
	var res []*HierarchyNode
	var bf traverse.BreadthFirst
	bf.Walk(g, from, func(n graph.Node, _ int) bool {
		if n.ID() != from.id {
			res = append(res, h.nodes[n.ID()])
		}
		return false
	})
	return res
}

// Ancestors returns the concepts of all nodes strictly above the node of c.
func (h *Hierarchy) Ancestors(c Concept) ([]Concept, error) {
	n, err := h.Node(c)
	if err != nil {
		return nil, err
	}
	return flatten(h.reachable(h.up, n)), nil
}

// Descendants returns the concepts of all nodes strictly below the node of c.
func (h *Hierarchy) Descendants(c Concept) ([]Concept, error) {
	n, err := h.Node(c)
	if err != nil {
		return nil, err
	}
	return flatten(h.reachable(h.down, n)), nil
}

// Subsumes reports whether d ⊑ c according to the hierarchy.
func (h *Hierarchy) Subsumes(c, d Concept) (bool, error) {
	cn, err := h.Node(c)
	if err != nil {
		return false, err
	}
	dn, err := h.Node(d)
	if err != nil {
		return false, err
	}
	return cn == dn || topo.PathExistsIn(h.down, cn, dn), nil
}

// TopologicalOrder returns the nodes such that each node comes before all
// of its descendants, ties are broken by the representatives.
func (h *Hierarchy) TopologicalOrder() ([]*HierarchyNode, error) {
	sorted, err := topo.SortStabilized(h.down, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) int {
			return compareNodes(h.nodes[a.ID()], h.nodes[b.ID()])
		})
	})
	if err != nil {
		return nil, fmt.Errorf("hierarchy is not acyclic: %w", err)
	}
	res := make([]*HierarchyNode, len(sorted))
	for i, n := range sorted {
		res[i] = h.nodes[n.ID()]
	}
	return res, nil
}

// Pairs returns every pair (A, B) of concept names with A ⊑ B and A ≠ B,
// ordered by A then B. ⊤ and ⊥ are left out.
func (h *Hierarchy) Pairs() [][2]Concept {
	var res [][2]Concept
	for _, n := range h.nodes {
		above := append(n.Concepts(), flatten(h.reachable(h.up, n))...)
		sortConcepts(above)
		for _, a := range n.concepts {
			if a.Kind() != NameKind {
				continue
			}
			for _, b := range above {
				if b != a && b.Kind() == NameKind {
					res = append(res, [2]Concept{a, b})
				}
			}
		}
	}
	slices.SortFunc(res, func(x, y [2]Concept) int {
		if c := CompareConcepts(x[0], y[0]); c != 0 {
			return c
		}
		return CompareConcepts(x[1], y[1])
	})
	return res
}
