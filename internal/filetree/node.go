package filetree

import "github.com/AstyCo/lazyut/internal/pathutil"

// NodeType distinguishes directory nodes from regular-file nodes.
type NodeType uint8

const (
	Directory NodeType = iota
	RegularFile
)

// Flags is a bitset of per-node states (spec.md §3 "File node").
type Flags uint8

const (
	// Modified is set on a regular file whose content digest changed (or is
	// new) relative to the restored snapshot.
	Modified Flags = 1 << iota
	// TestFile is set on every regular file under a configured test directory.
	TestFile
	// Labeled marks a file singled out by an auxiliary pass, currently used
	// only for the bounded "contains main" test-file search (spec.md §4.6).
	Labeled
)

// Has reports whether all bits in want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Color is a three-state DFS marker: white (unvisited) vs. grey (on the
// current DFS stack) vs. black (finalized), the same white/grey/black scheme
// golang-dep/pkgtree/pkgtree.go's wmToReach uses to resolve import cycles
// through xtests. Node carries it in place of a single "visited" bool, but
// the reachability engine in internal/graph does not read or set it: its
// Tarjan SCC walk keeps its own index/lowlink bookkeeping.
type Color uint8

const (
	White Color = iota
	Grey
	Black
)

// Node is one node of a FileTree: either a directory or a regular file.
// Mirrors FileNode in original_source/lib/types/file_tree.cpp.
type Node struct {
	Name   string // this node's own path segment ("" for the root)
	Record Record
	Type   NodeType
	Flags  Flags

	Parent   *Node
	Children []*Node // ordered, directory contents in discovery order
	byName   map[string]*Node

	// Explicit edges (spec.md §4.4), installed by internal/graph.
	ExplicitDeps  map[*Node]struct{} // this includes/inherits that, or that implements a symbol this declares
	ExplicitDepBy map[*Node]struct{} // reverse of ExplicitDeps: every node with an explicit edge to this

	// Closure edges (spec.md §4.5), computed by internal/graph.
	Deps  map[*Node]struct{} // transitive, includes self after closure
	DepBy map[*Node]struct{} // transitive

	// Color is the reachability-walk marker (see Color's doc comment).
	Color Color
}

func newNode(name string, typ NodeType) *Node {
	return &Node{
		Name:          name,
		Type:          typ,
		byName:        make(map[string]*Node),
		ExplicitDeps:  make(map[*Node]struct{}),
		ExplicitDepBy: make(map[*Node]struct{}),
		Deps:          make(map[*Node]struct{}),
		DepBy:         make(map[*Node]struct{}),
	}
}

// IsDirectory reports whether n is a directory node.
func (n *Node) IsDirectory() bool { return n.Type == Directory }

// IsRegularFile reports whether n is a regular-file node.
func (n *Node) IsRegularFile() bool { return n.Type == RegularFile }

// IsModified reports the Modified flag.
func (n *Node) IsModified() bool { return n.Flags.Has(Modified) }

// IsTestFile reports the TestFile flag.
func (n *Node) IsTestFile() bool { return n.Flags.Has(TestFile) }

// IsLabeled reports the Labeled flag.
func (n *Node) IsLabeled() bool { return n.Flags.Has(Labeled) }

// SetFlag ORs flag into n's flag set.
func (n *Node) SetFlag(flag Flags) { n.Flags |= flag }

// Path reconstructs this node's path relative to the tree root by walking
// parent pointers. O(depth); callers on a hot path should cache the result.
func (n *Node) Path() pathutil.RelPath {
	var segs []string
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		segs = append(segs, cur.Name)
	}
	// segs is root-to-leaf reversed; flip it.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return pathutil.RelPathFromSegments(segs...)
}

// FindChild returns the direct child named hn, honoring "." (self) and ".."
// (parent), or nil if there is no such child. Mirrors
// FileNode::findChild in original_source/lib/types/file_tree.cpp.
func (n *Node) FindChild(hn pathutil.HashedName) *Node {
	if c, ok := n.byName[hn.Name]; ok {
		return c
	}
	if hn.IsDotDot() {
		return n.Parent
	}
	if hn.IsDot() {
		return n
	}
	return nil
}

// findOrNewChild returns the existing child named hn, or creates, registers,
// and returns a new one of the given type.
func (n *Node) findOrNewChild(hn pathutil.HashedName, typ NodeType) *Node {
	if c := n.byName[hn.Name]; c != nil {
		return c
	}
	child := newNode(hn.Name, typ)
	n.addChild(child)
	return child
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
	n.byName[child.Name] = child
}

// removeChild deletes child from n's child list. O(len(Children)).
func (n *Node) removeChild(child *Node) {
	delete(n.byName, child.Name)
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			break
		}
	}
	child.Parent = nil
}

// HasRegularFiles reports whether n or any descendant is a regular file.
// Mirrors FileNode::hasRegularFiles.
func (n *Node) HasRegularFiles() bool {
	if n.IsRegularFile() {
		return true
	}
	for _, c := range n.Children {
		if c.HasRegularFiles() {
			return true
		}
	}
	return false
}

// Search walks path segment-by-segment starting at n, honoring "." and "..".
// Mirrors FileNode::search.
func (n *Node) Search(path pathutil.RelPath) *Node {
	cur := n
	for _, seg := range path.Segments() {
		if cur == nil {
			return nil
		}
		cur = cur.FindChild(pathutil.NewHashedName(seg))
	}
	return cur
}

// Walk calls fn for n and, recursively, every descendant, pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
