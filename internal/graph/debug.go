package graph

import "github.com/AstyCo/lazyut/internal/filetree"

// CheckSymmetry verifies spec.md §8 invariant 1/2's edge symmetry: every
// explicit and closure edge has a matching reverse entry on the other side.
// Exported as a test helper for the analyzer's own test suite rather than
// exercised in production runs.
func CheckSymmetry(tree *filetree.Tree) error {
	var err error
	tree.Root.Walk(func(n *filetree.Node) {
		if !n.IsRegularFile() {
			return
		}
		for target := range n.ExplicitDeps {
			if _, ok := target.ExplicitDepBy[n]; !ok {
				err = errAsymmetric(n, target, "ExplicitDeps/ExplicitDepBy")
			}
		}
		for target := range n.Deps {
			if _, ok := target.DepBy[n]; !ok {
				err = errAsymmetric(n, target, "Deps/DepBy")
			}
		}
	})
	return err
}

// CheckTransitiveClosure verifies that Deps/DepBy are actually closed: every
// node reachable from a member of n.Deps is itself in n.Deps (and
// symmetrically for DepBy).
func CheckTransitiveClosure(tree *filetree.Tree) error {
	var err error
	tree.Root.Walk(func(n *filetree.Node) {
		if !n.IsRegularFile() {
			return
		}
		for member := range n.Deps {
			for grandchild := range member.Deps {
				if _, ok := n.Deps[grandchild]; !ok {
					err = errNotClosed(n, member, grandchild, "Deps")
				}
			}
		}
		for member := range n.DepBy {
			for grandchild := range member.DepBy {
				if _, ok := n.DepBy[grandchild]; !ok {
					err = errNotClosed(n, member, grandchild, "DepBy")
				}
			}
		}
	})
	return err
}

func errAsymmetric(n, target *filetree.Node, set string) error {
	return &symmetryError{from: n.Path().String(), to: target.Path().String(), set: set}
}

type symmetryError struct {
	from, to, set string
}

func (e *symmetryError) Error() string {
	return e.set + " edge " + e.from + " -> " + e.to + " has no matching reverse entry"
}

func errNotClosed(n, member, grandchild *filetree.Node, set string) error {
	return &closureError{
		root: n.Path().String(), member: member.Path().String(), missing: grandchild.Path().String(), set: set,
	}
}

type closureError struct {
	root, member, missing, set string
}

func (e *closureError) Error() string {
	return e.set + " of " + e.root + " reaches " + e.member + " which reaches " + e.missing + ", but " + e.missing + " is missing from " + e.root + "'s " + e.set
}
