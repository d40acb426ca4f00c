// Package traverse implements the readSources collaborator (spec.md §4.1):
// walking a source directory on disk and adding every non-ignored file with
// a recognized extension to a filetree.Tree.
//
// Grounded on DirectoryReader::readSources / isSourceFile / isIgnored in
// original_source/lib/directoryreader.hpp, using
// github.com/karrick/godirwalk for the walk itself the way golang-dep's
// vendored copy is built to be used (golang-dep's own pkgtree walker rolls
// its own BFS instead of calling into its vendored godirwalk; LazyUT uses
// the library directly since nothing here needs anything more specialized).
package traverse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// Options configures one ReadSources call.
type Options struct {
	// Extensions is the set of recognized source-file extensions, each
	// including the leading dot (".cpp", ".hpp", ...). A nil/empty set
	// matches every file.
	Extensions []string
	// IgnoreSubstrings rejects any file whose OS-native path contains one
	// of these substrings, e.g. "/build/" or "/.git/".
	IgnoreSubstrings []string
}

func (o Options) isSourceFile(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range o.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (o Options) isIgnored(osPath string) bool {
	for _, sub := range o.IgnoreSubstrings {
		if strings.Contains(osPath, sub) {
			return true
		}
	}
	return false
}

// ReadSources walks the OS directory at absDir and adds every accepted
// regular file to tree, as a path relative to treeRelBase (the tree-relative
// directory absDir corresponds to). Mirrors
// DirectoryReader::readSources(SplittedPath, FileTree&).
func ReadSources(tree *filetree.Tree, absDir string, treeRelBase pathutil.RelPath, opts Options) error {
	if _, err := os.Stat(absDir); err != nil {
		return errors.Wrapf(err, "source directory %s", absDir)
	}

	return godirwalk.Walk(absDir, &godirwalk.Options{
		Unsorted:            false,
		FollowSymbolicLinks: false,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if osPathname == absDir {
				return nil
			}
			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil {
				return errors.Wrapf(err, "stat %s", osPathname)
			}
			if isDir {
				return nil
			}
			if opts.isIgnored(osPathname) || !opts.isSourceFile(de.Name()) {
				return nil
			}

			rel, err := filepath.Rel(absDir, osPathname)
			if err != nil {
				return errors.Wrapf(err, "relativizing %s", osPathname)
			}
			tree.AddFile(treeRelBase.Append(pathutil.NewRelPath(rel)))
			return nil
		},
	})
}
