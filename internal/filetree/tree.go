package filetree

import (
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/pkg/errors"
)

// State is the monotonic lifecycle of a Tree (spec.md §3 "File tree").
type State uint8

const (
	Clean State = iota
	Filled
	Filtered
	CachesCalculated
	Parsed
	Restored
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Filled:
		return "filled"
	case Filtered:
		return "filtered"
	case CachesCalculated:
		return "caches-calculated"
	case Parsed:
		return "parsed"
	case Restored:
		return "restored"
	default:
		return "unknown"
	}
}

// Tree is the hierarchical container of file nodes described in spec.md
// §4.1. Mirrors FileTree in original_source/lib/types/file_tree.cpp.
type Tree struct {
	Root         *Node
	RootPath     string // absolute, OS-native
	ProjectDir   pathutil.RelPath
	IncludePaths []*Node
	Affected     []*Node
	State        State
}

// New creates an empty tree rooted at rootPath (an absolute filesystem
// path). Every RelPath given to the tree's methods is interpreted relative
// to rootPath.
func New(rootPath string) *Tree {
	return &Tree{
		Root:     newNode("", Directory),
		RootPath: rootPath,
	}
}

// AddFile walks relPath's segments from the root, creating intermediate
// directory nodes and a terminal regular-file node as needed. Idempotent:
// calling it twice with the same path returns the same node. Mirrors
// FileTree::addFile.
func (t *Tree) AddFile(relPath pathutil.RelPath) *Node {
	segs := relPath.Segments()
	cur := t.Root
	for i, seg := range segs {
		typ := Directory
		if i == len(segs)-1 {
			typ = RegularFile
		}
		cur = cur.findOrNewChild(pathutil.NewHashedName(seg), typ)
	}
	return cur
}

// Search returns the node at relPath, or nil. Mirrors FileTree's use of
// FileNode::search from the root.
func (t *Tree) Search(relPath pathutil.RelPath) *Node {
	return t.Root.Search(relPath)
}

// AddIncludePath registers relPath (resolved against the root) as an extra
// search root for bracketed/quoted includes. Mirrors FileTree::addIncludePath.
func (t *Tree) AddIncludePath(relPath pathutil.RelPath) error {
	node := t.Root.Search(relPath)
	if node == nil {
		return errors.Errorf("include path %q not found", relPath.String())
	}
	t.IncludePaths = append(t.IncludePaths, node)
	return nil
}

// SearchIncludedFile resolves an #include directive found in `from`,
// honoring the documented search order (spec.md §4.1):
//
//   - quoted:     sibling-relative lookup from from's directory, then
//     include paths;
//   - bracketed:  include paths, then sibling-relative.
//
// Ties are broken by the first match in the configured include-path order.
// Mirrors FileTree::searchIncludedFile.
func (t *Tree) SearchIncludedFile(dir IncludeDirective, from *Node) *Node {
	path := pathutil.NewRelPath(dir.Filename)
	switch dir.Kind {
	case Quoted:
		if n := t.searchInCurrentDir(path, from.Parent); n != nil {
			return n
		}
		return t.searchInIncludePaths(path)
	default: // Bracketed
		if n := t.searchInIncludePaths(path); n != nil {
			return n
		}
		return t.searchInCurrentDir(path, from.Parent)
	}
}

func (t *Tree) searchInCurrentDir(path pathutil.RelPath, dir *Node) *Node {
	if dir == nil {
		return nil
	}
	return dir.Search(path)
}

func (t *Tree) searchInIncludePaths(path pathutil.RelPath) *Node {
	for _, root := range t.IncludePaths {
		if n := root.Search(path); n != nil {
			return n
		}
	}
	return nil
}

// SearchInRoot resolves path against the tree root rather than against a
// file's directory or the include paths. The edge installer does not call
// it: inheritance and implementation targets reach it already resolved to
// nodes by internal/resolver.
func (t *Tree) SearchInRoot(path pathutil.RelPath) *Node {
	return t.searchInCurrentDir(path, t.Root)
}

// RemoveEmptyDirectories deletes every directory with no descendant regular
// file. Mirrors FileTree::removeEmptyDirectories; requires State == Filled.
func (t *Tree) RemoveEmptyDirectories() {
	removeEmptyDirectories(t.Root)
	t.State = Filtered
}

func removeEmptyDirectories(n *Node) {
	if n.IsRegularFile() {
		return
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		removeEmptyDirectories(c)
		if c.HasRegularFiles() {
			kept = append(kept, c)
		} else {
			delete(n.byName, c.Name)
			c.Parent = nil
		}
	}
	n.Children = kept
}

// CalculateFileHashes computes the content digest of every regular file.
// I/O errors are returned (one per failing file) and that file is left with
// HashValid == false, so it is treated as modified and retried on the next
// run. Mirrors FileTree::calculateFileHashes; requires State == Filtered.
func (t *Tree) CalculateFileHashes() []error {
	var errs []error
	t.Root.Walk(func(n *Node) {
		if !n.IsRegularFile() {
			return
		}
		digest, err := pathutil.DigestFile(joinOS(t.RootPath, n.Path()))
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "hashing %s", n.Path().String()))
			return
		}
		n.Record.Digest = digest
		n.Record.HashValid = true
	})
	t.State = CachesCalculated
	return errs
}
