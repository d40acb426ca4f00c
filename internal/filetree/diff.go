package filetree

import (
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/AstyCo/lazyut/log"
)

// DiffAgainstRestored cross-walks t and restored by child name, per spec.md
// §4.2:
//
//   - if the current node and the restored node are both regular files with
//     matching content digests, the restored record's parsed fields are
//     transferred onto the current node (no re-parse needed);
//   - otherwise a current regular file is marked Modified (directory nodes
//     never carry the flag themselves);
//   - a current child with no counterpart in restored has every regular
//     file in its subtree marked Modified.
//
// Mirrors FileTree::parseModifiedFiles /
// FileTree::compareModifiedFilesRecursive in
// original_source/lib/types/file_tree.cpp. Requires t.State ==
// CachesCalculated; sets no state on t (callers set Parsed after invoking
// the parse callback on every file left Modified).
func (t *Tree) DiffAgainstRestored(restored *Tree, logger *log.Logger) {
	if restored == nil || restored.Root == nil {
		markAllModified(t.Root)
		return
	}
	diffRecursive(t.Root, restored.Root, logger)
}

func diffRecursive(cur, restored *Node, logger *log.Logger) {
	if cur.IsRegularFile() {
		if restored != nil && restored.IsRegularFile() && cur.Record.Digest == restored.Record.Digest && restored.Record.HashValid {
			cur.Record.SwapParsedData(&restored.Record)
		} else {
			cur.SetFlag(Modified)
		}
	}

	for _, child := range cur.Children {
		if restored == nil {
			markAllModified(child)
			continue
		}
		if restoredChild := restored.FindChild(hashedNameOf(child)); restoredChild != nil {
			diffRecursive(child, restoredChild, logger)
		} else {
			if logger != nil {
				logger.Tracef("child %s not found in restored tree, marking modified", child.Path().String())
			}
			markAllModified(child)
		}
	}
}

func hashedNameOf(n *Node) pathutil.HashedName { return pathutil.NewHashedName(n.Name) }

// markAllModified marks n as Modified if it is a regular file, or else every
// descendant regular file of the directory n. Mirrors
// FileTree::installModifiedFiles.
func markAllModified(n *Node) {
	if n.IsRegularFile() {
		n.SetFlag(Modified)
		return
	}
	for _, c := range n.Children {
		markAllModified(c)
	}
}
