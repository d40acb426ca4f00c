// Package graph installs the explicit dependency edges described in
// spec.md §4.4 and computes their transitive closure (spec.md §4.5).
//
// Grounded on FileTree::installIncludes / installInheritances /
// installImplements in original_source/lib/types/file_tree.cpp for the
// edge directions. Closure's cycle-safe walk uses Tarjan's SCC algorithm
// (scc.go) rather than the three-color DFS of golang-dep/pkgtree/pkgtree.go's
// wmToReach.
package graph

import "github.com/AstyCo/lazyut/internal/filetree"

// Install walks every regular file in tree and, for each parsed relationship
// on its Record, adds a symmetric pair of explicit edges:
//
//	relationship   edge added to n.ExplicitDeps   edge added to target.ExplicitDepBy
//	include        target                          n
//	inherits       target (base class file)        n
//	implements     target (declaring file)          n   -- reversed: a header
//	                                                      depends on whoever
//	                                                      implements it
//
// The include edges are resolved here (via tree's search order); inheritance
// and implementation edges are expected to already be resolved into
// Record.BaseClassFiles / Record.ImplementFiles by internal/resolver before
// Install runs.
func Install(tree *filetree.Tree) {
	tree.Root.Walk(func(n *filetree.Node) {
		if !n.IsRegularFile() {
			return
		}
		for _, inc := range n.Record.Includes {
			if target := tree.SearchIncludedFile(inc, n); target != nil {
				addEdge(n, target)
			}
		}
		for _, base := range n.Record.BaseClassFiles {
			addEdge(n, base)
		}
		for _, decl := range n.Record.ImplementFiles {
			// Reversed: the header that declares a symbol depends on every
			// file that implements it, not the other way around.
			addEdge(decl, n)
		}
	})
}

func addEdge(from, to *filetree.Node) {
	if from == to {
		return
	}
	from.ExplicitDeps[to] = struct{}{}
	to.ExplicitDepBy[from] = struct{}{}
}
