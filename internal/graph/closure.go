package graph

import "github.com/AstyCo/lazyut/internal/filetree"

// Closure computes, for every regular file across all given trees, the
// transitive closure of ExplicitDeps into Deps and of ExplicitDepBy into
// DepBy, including the node itself (spec.md §4.5: "a file's own node is a
// member of its own dependency/dependent-by closure").
//
// It takes every tree belonging to one analysis run (source, test, extra
// deps) rather than one tree at a time: spec.md's edge installer lets a test
// file's include/implement/inherit edges point at a source-tree node (and
// vice versa), so the reachability walk has to see the whole node set in
// one pass or it would silently stop at a tree boundary.
//
// Mirrors FileTree::installDepsPrivate / installDepsPrivateR in
// original_source/lib/types/file_tree.cpp, generalized to stay correct on
// mutually-including headers (spec.md scenario S5) via Tarjan's SCC
// algorithm rather than the single "visited" guard the C++ original uses —
// see tarjan's doc comment for why a cycle needs component grouping, not
// just a recursion guard.
func Closure(trees ...*filetree.Tree) {
	var files []*filetree.Node
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		tree.Root.Walk(func(n *filetree.Node) {
			if n.IsRegularFile() {
				files = append(files, n)
			}
		})
	}
	closeDirection(files, forward)
	closeDirection(files, backward)
}

func closeDirection(files []*filetree.Node, dir direction) {
	if len(files) == 0 {
		return
	}

	components := tarjan(files, dir)

	// components is in reverse topological order: a component never
	// references a component that appears later in this slice, so a single
	// forward pass lets every component's closure be assembled purely from
	// already-finished closures of the components it points to.
	closureOfComponent := make(map[*filetree.Node]map[*filetree.Node]struct{}, len(files))

	for _, comp := range components {
		merged := make(map[*filetree.Node]struct{}, len(comp))
		for _, member := range comp {
			merged[member] = struct{}{}
		}
		for _, member := range comp {
			for target := range edgesOf(member, dir) {
				for sccMember := range closureOfComponent[target] {
					merged[sccMember] = struct{}{}
				}
			}
		}
		for _, member := range comp {
			closureOfComponent[member] = merged
		}
	}

	for _, n := range files {
		dst := closureOf(n, dir)
		for member := range closureOfComponent[n] {
			dst[member] = struct{}{}
		}
	}
}

type direction uint8

const (
	forward direction = iota
	backward
)

func edgesOf(n *filetree.Node, dir direction) map[*filetree.Node]struct{} {
	if dir == forward {
		return n.ExplicitDeps
	}
	return n.ExplicitDepBy
}

func closureOf(n *filetree.Node, dir direction) map[*filetree.Node]struct{} {
	if dir == forward {
		return n.Deps
	}
	return n.DepBy
}
