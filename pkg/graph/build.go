package graph

import "github.com/matzehuels/lockgraph/pkg/manifest"

// Edge is a directed parent -> child dependency.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// frame is one level of the explicit traversal stack.
type frame struct {
	name string
	deps []string
	next int
}

// Build returns the edges of every top-level traversal of m, in manifest
// order. Within a record, dependencies are visited in declaration order.
//
// The returned slice is never nil. Build does not modify m and returns the
// same sequence for the same manifest.
func Build(m *manifest.Manifest) []Edge {
	edges := []Edge{}
	for _, root := range m.Names() {
		edges = walk(m, root, edges)
	}
	return edges
}

// walk appends the edges reachable from root. onPath holds the names of the
// frames currently on the stack.
func walk(m *manifest.Manifest, root string, edges []Edge) []Edge {
	rec, ok := m.Lookup(root)
	if !ok {
		return edges
	}

	onPath := map[string]bool{root: true}
	stack := []*frame{{name: root, deps: rec.Dependencies}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.deps) {
			stack = stack[:len(stack)-1]
			delete(onPath, top.name)
			continue
		}

		child := top.deps[top.next]
		top.next++
		edges = append(edges, Edge{From: top.name, To: child})

		if onPath[child] {
			continue
		}
		sub, ok := m.Lookup(child)
		if !ok {
			continue
		}
		onPath[child] = true
		stack = append(stack, &frame{name: child, deps: sub.Dependencies})
	}
	return edges
}
