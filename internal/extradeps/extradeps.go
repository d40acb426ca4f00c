// Package extradeps reads the JSON file of manually declared extra edges
// (spec.md §6 "extra deps file") and installs them directly as explicit
// dependency edges, bypassing parsing and symbol resolution entirely.
//
// This is one of the collaborators spec.md's Out of scope list assigns to
// the outer layers rather than the core engine; it is implemented with the
// standard library's encoding/json rather than a third-party decoder
// because the format is a LazyUT-defined schema with no existing library
// binding anywhere in the example pack — see DESIGN.md.
package extradeps

import (
	"encoding/json"
	"io"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/pkg/errors"
)

// Edge is one manually declared dependency: the file at From depends on
// every file listed in To.
type Edge struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

// Read parses the extra-deps JSON document from r.
func Read(r io.Reader) ([]Edge, error) {
	var edges []Edge
	if err := json.NewDecoder(r).Decode(&edges); err != nil {
		return nil, errors.Wrap(err, "decoding extra dependencies")
	}
	return edges, nil
}

// Install resolves every edge's From/To paths against srcTree (falling back
// to testTree when a path isn't found in srcTree, since extra deps may cross
// between source and test trees) and adds the resulting explicit edges.
// A path naming neither a source nor a test file isn't an error: it names a
// file the extra-deps author knows about but that cparse's tree building
// never saw (a generated file, a build artifact, anything outside SrcDirs/
// TestDirs). Such a path is staged as a placeholder node in extraTree rather
// than dropped, the same way FileSystem gives installExtraDependencies a
// third tree to land in rather than forcing every manual edge to resolve
// against srcTree/testTree (file_system.hpp's srcTree/testTree/extraDepsTree
// trio). extraTree is folded into graph.Closure alongside srcTree and
// testTree, so its placeholder nodes still participate in the transitive
// walk even though they never appear in an affected-files report themselves.
func Install(edges []Edge, srcTree, testTree, extraTree *filetree.Tree) {
	lookup := func(p string) *filetree.Node {
		rel := pathutil.NewRelPath(p)
		if n := srcTree.Search(rel); n != nil {
			return n
		}
		if n := testTree.Search(rel); n != nil {
			return n
		}
		if n := extraTree.Search(rel); n != nil {
			return n
		}
		return extraTree.AddFile(rel)
	}

	for _, edge := range edges {
		from := lookup(edge.From)
		for _, to := range edge.To {
			target := lookup(to)
			if target == from {
				continue
			}
			from.ExplicitDeps[target] = struct{}{}
			target.ExplicitDepBy[from] = struct{}{}
		}
	}
}
