// Package affected extracts the affected-file sets spec.md §4.6 describes
// from a FileTree whose explicit edges and transitive closures have already
// been installed by internal/graph.
//
// Grounded on FileNode::isAffected / FileTree::installAffectedFilesRecursive
// / affectedFiles in original_source/lib/types/file_tree.cpp.
package affected

import "github.com/AstyCo/lazyut/internal/filetree"

// IsAffected reports whether n is affected: either n itself was modified, or
// some file n transitively depends on was modified ("this uses affected"),
// or some file that transitively depends on n was modified ("affected uses
// this"). Deps and DepBy are closures that already include n itself, so both
// loops also catch the degenerate case of n being directly modified; the
// separate direct check only short-circuits the common case without
// building either set.
func IsAffected(n *filetree.Node) bool {
	if n.IsModified() {
		return true
	}
	for dep := range n.Deps {
		if dep.IsModified() {
			return true
		}
	}
	for dep := range n.DepBy {
		if dep.IsModified() {
			return true
		}
	}
	return false
}

// Collect walks tree and returns every regular-file node for which
// IsAffected holds, in tree discovery order. Mirrors
// FileTree::installAffectedFilesRecursive.
func Collect(tree *filetree.Tree) []*filetree.Node {
	var out []*filetree.Node
	tree.Root.Walk(func(n *filetree.Node) {
		if n.IsRegularFile() && IsAffected(n) {
			out = append(out, n)
		}
	})
	tree.Affected = out
	return out
}

// Sources filters affected down to the non-test-file nodes.
func Sources(affected []*filetree.Node) []*filetree.Node {
	return filterByTestFlag(affected, false)
}

// Tests filters affected down to the test-file nodes.
func Tests(affected []*filetree.Node) []*filetree.Node {
	return filterByTestFlag(affected, true)
}

func filterByTestFlag(affected []*filetree.Node, wantTest bool) []*filetree.Node {
	var out []*filetree.Node
	for _, n := range affected {
		if n.IsTestFile() == wantTest {
			out = append(out, n)
		}
	}
	return out
}
