package graph

import "github.com/AstyCo/lazyut/internal/filetree"

// tarjan finds the strongly connected components of the regular-file nodes
// reachable via dir's edges, starting from every node in nodes. It returns
// them in the order Tarjan's algorithm emits them, which is guaranteed to be
// a reverse topological order of the SCC condensation: an SCC containing no
// edges out to any not-yet-emitted SCC always comes before one that does.
//
// Closure needs exactly that order: a component's closure can only be
// computed once every component it points to already has its own closure
// computed, and a plain three-color DFS memoization (the original, simpler
// design) silently under-counts a node's closure when two nodes mutually
// include each other, because the node that finishes first in the recursion
// never learns about members its cycle-mate only discovers later. Tarjan's
// component grouping removes that ordering hazard at the cost of one extra
// linear pass.
func tarjan(nodes []*filetree.Node, dir direction) [][]*filetree.Node {
	t := &tarjanState{
		index:   make(map[*filetree.Node]int),
		lowlink: make(map[*filetree.Node]int),
		onStack: make(map[*filetree.Node]bool),
		dir:     dir,
	}
	for _, n := range nodes {
		if _, seen := t.index[n]; !seen {
			t.strongConnect(n)
		}
	}
	return t.components
}

type tarjanState struct {
	dir        direction
	counter    int
	index      map[*filetree.Node]int
	lowlink    map[*filetree.Node]int
	onStack    map[*filetree.Node]bool
	stack      []*filetree.Node
	components [][]*filetree.Node
}

func (t *tarjanState) strongConnect(v *filetree.Node) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for w := range edgesOf(v, t.dir) {
		if _, seen := t.index[w]; !seen {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}

	var comp []*filetree.Node
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	t.components = append(t.components, comp)
}
