package filetree

import (
	"path/filepath"

	"github.com/AstyCo/lazyut/internal/pathutil"
)

// joinOS joins an absolute OS root with a tree-relative path, converting
// the RelPath's slash segments to the host's native separator.
func joinOS(root string, rel pathutil.RelPath) string {
	segs := rel.Segments()
	parts := make([]string, 0, len(segs)+1)
	parts = append(parts, root)
	parts = append(parts, segs...)
	return filepath.Join(parts...)
}
