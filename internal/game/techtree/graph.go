package techtree

import "paleotrek.quest/internal/content"

// Set is an unlocked/owned id set.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Node is one entry of a prerequisite graph: an id plus its direct
// requirements in declaration order.
type Node struct {
	ID       string
	Requires []string
}

// Graph is a static prerequisite structure. It is built once from loaded
// content and never mutated; unlock progress lives in the caller's Set.
type Graph struct {
	order []string
	nodes map[string]Node
}

func New(nodes []Node) *Graph {
	g := &Graph{nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		g.order = append(g.order, n.ID)
		g.nodes[n.ID] = n
	}
	return g
}

// FromTechnologies builds the technology graph: edges are prerequisite
// technology ids.
func FromTechnologies(cat content.TechCatalog) *Graph {
	nodes := make([]Node, 0, len(cat.Order))
	for _, id := range cat.Order {
		nodes = append(nodes, Node{ID: id, Requires: cat.ByID[id].Prerequisites})
	}
	return New(nodes)
}

// FromCraftables builds the craftable graph: edges are required tool ids
// followed by required component ids.
func FromCraftables(cat content.CraftCatalog) *Graph {
	nodes := make([]Node, 0, len(cat.Order))
	for _, id := range cat.Order {
		c := cat.ByID[id]
		var req []string
		for _, t := range c.RequiredTools {
			req = append(req, t.ID)
		}
		for _, t := range c.RequiredComponents {
			req = append(req, t.ID)
		}
		nodes = append(nodes, Node{ID: id, Requires: req})
	}
	return New(nodes)
}

func (g *Graph) Known(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Requires returns the direct requirements of id in declaration order, nil
// for an unknown id.
func (g *Graph) Requires(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.Requires
}

// IsAvailable reports whether id can be unlocked now: not already in
// unlocked, every direct requirement satisfied. The second result is false
// for an unknown id, in which case the first carries no meaning.
func (g *Graph) IsAvailable(id string, unlocked Set) (available, known bool) {
	n, ok := g.nodes[id]
	if !ok {
		return false, false
	}
	if unlocked.Has(id) {
		return false, true
	}
	for _, req := range n.Requires {
		if !unlocked.Has(req) {
			return false, true
		}
	}
	return true, true
}

// AvailableSet filters the full node list down to ids unlockable now,
// preserving declaration order.
func (g *Graph) AvailableSet(unlocked Set) []string {
	var out []string
	for _, id := range g.order {
		if ok, _ := g.IsAvailable(id, unlocked); ok {
			out = append(out, id)
		}
	}
	return out
}

// MissingPrerequisites lists the direct requirements of id not yet in
// unlocked, in declaration order. Nil for an unknown id.
func (g *Graph) MissingPrerequisites(id string, unlocked Set) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	var out []string
	for _, req := range n.Requires {
		if !unlocked.Has(req) {
			out = append(out, req)
		}
	}
	return out
}

// TransitiveClosure expands every direct and indirect requirement of id
// breadth-first, each visited once. Empty for a leaf or unknown id.
func (g *Graph) TransitiveClosure(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	seen := Set{}
	var out []string
	queue := append([]string(nil), n.Requires...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen.Has(cur) {
			continue
		}
		seen.Add(cur)
		out = append(out, cur)
		if next, ok := g.nodes[cur]; ok {
			queue = append(queue, next.Requires...)
		}
	}
	return out
}

// Roots returns the ids with no requirements, declaration order.
func (g *Graph) Roots() []string {
	var out []string
	for _, id := range g.order {
		if len(g.nodes[id].Requires) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// ValidateAcyclic walks every node depth-first with an on-stack marker and
// returns the ids found on a cycle, declaration order, empty when the graph
// is a DAG. Content-validation pass, not a hot path; requirements pointing
// at unknown ids are ignored here (the verify package reports them).
func (g *Graph) ValidateAcyclic() []string {
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(g.order))
	bad := Set{}

	var walk func(id string) bool
	walk = func(id string) bool {
		switch state[id] {
		case onStack:
			return true
		case done:
			return false
		}
		state[id] = onStack
		cyclic := false
		for _, req := range g.nodes[id].Requires {
			if _, ok := g.nodes[req]; !ok {
				continue
			}
			if walk(req) {
				cyclic = true
			}
		}
		state[id] = done
		if cyclic {
			bad.Add(id)
		}
		return cyclic
	}

	for _, id := range g.order {
		walk(id)
	}

	var out []string
	for _, id := range g.order {
		if bad.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
