// Package resolver implements the scoped-name symbol resolution described
// in spec.md §4.3: two trie-like scope trees (class declarations, function
// declarations) that honor using-namespace directives and file scope
// nesting, and the longest-suffix class match used to resolve an
// implementation name to the file(s) that declare it.
//
// Grounded on HashedStringNode / DependencyAnalyzer in
// original_source/lib/dependency_analyzer.hpp. The trie is a hand-rolled
// node-and-children-map structure rather than github.com/armon/go-radix —
// see DESIGN.md for why the vendored radix tree does not fit this shape.
package resolver

import "github.com/AstyCo/lazyut/internal/pathutil"

// FileRef is the minimal view of a file node the resolver needs: something
// it can append to a trie leaf's declaring-file list and hand back to the
// edge installer. internal/filetree.Node satisfies this implicitly via the
// concrete type used by internal/analyzer; the resolver package itself
// stays free of a filetree import so it can be unit-tested against plain
// stand-ins.
type FileRef interface{}

// node is one node of a scope trie: a segment hash, children keyed by their
// own segment hash, a parent back-pointer (used only for debugging/printing,
// never for lookup), and the list of files that declare/define the symbol
// at this exact path. Mirrors HashedStringNode.
type node struct {
	hash     uint64
	name     string
	parent   *node
	children map[uint64]*node
	data     []FileRef
}

func newTrieNode(parent *node, hn pathutil.HashedName) *node {
	return &node{
		hash:     hn.Hash,
		name:     hn.Name,
		parent:   parent,
		children: make(map[uint64]*node),
	}
}

// Trie is a scope tree rooted at an empty path; every scoped name declared
// in the source is inserted as a path down from the root, and the terminal
// node accumulates every file that declares that name (spec.md: "Ties...
// are resolved by recording all declaring file nodes").
type Trie struct {
	root *node
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode(nil, pathutil.HashedName{})}
}

// Insert records that ref declares/defines name, creating intermediate
// scope nodes as needed. Mirrors HashedStringNode::insert.
func (t *Trie) Insert(name pathutil.ScopedName, ref FileRef) {
	n := t.findOrNew(t.root, name)
	n.data = append(n.data, ref)
}

func (t *Trie) findOrNew(start *node, name pathutil.ScopedName) *node {
	cur := start
	for _, seg := range name {
		child, ok := cur.children[seg.Hash]
		if !ok {
			child = newTrieNode(cur, seg)
			cur.children[seg.Hash] = child
		}
		cur = child
	}
	return cur
}

// Find walks name from root (or from an alternate start node, see
// FindFrom) and returns the declaring files at that exact path, or nil if
// no symbol was declared there. Mirrors HashedStringNode::findSplitted.
func (t *Trie) Find(name pathutil.ScopedName) []FileRef {
	return t.FindFrom(t.root, name)
}

// FindFrom walks name starting at an arbitrary trie node, which lets the
// resolver restart a lookup at a using-namespace node instead of the global
// root (spec.md §4.3: "using namespace directives... permit lookup to begin
// at any listed namespace node as an alternative root").
func (t *Trie) FindFrom(start *node, name pathutil.ScopedName) []FileRef {
	cur := start
	for _, seg := range name {
		child, ok := cur.children[seg.Hash]
		if !ok {
			return nil
		}
		cur = child
	}
	if len(cur.data) == 0 {
		return nil
	}
	return cur.data
}

// Root returns the trie's root node, usable as a FindFrom start point.
func (t *Trie) Root() *node { return t.root }

// Namespace looks up a namespace path and returns its node for use as an
// alternate FindFrom root, or nil if that namespace path was never used as
// a prefix of any declaration (i.e. there is nothing to search under it).
func (t *Trie) Namespace(name pathutil.ScopedName) *node {
	cur := t.root
	for _, seg := range name {
		child, ok := cur.children[seg.Hash]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}
