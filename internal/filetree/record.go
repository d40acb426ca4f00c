// Package filetree implements the hierarchical file-tree data model
// (spec.md §3, §4.1) shared across the analyzer: parsed per-file facts,
// tree nodes, and the tree itself, including the snapshot diff that lets
// unmodified files skip re-parsing.
//
// Grounded on FileRecord/FileNode/FileTree in
// original_source/lib/types/file_tree.cpp, restated using Go maps for
// child/lookup where the C++ original used linear vector scans, in the
// style of golang-dep/pkgtree/pkgtree.go's map[string]PackageOrErr.
package filetree

import "github.com/AstyCo/lazyut/internal/pathutil"

// IncludeKind distinguishes the two #include spellings.
type IncludeKind uint8

const (
	// Quoted is `#include "file.h"`.
	Quoted IncludeKind = iota
	// Bracketed is `#include <file.h>`.
	Bracketed
)

// IncludeDirective is one include directive found in a file, tagged with
// its spelling so the file tree can apply the documented search order.
type IncludeDirective struct {
	Kind     IncludeKind
	Filename string // as written, slash-normalized
}

func (d IncludeDirective) String() string {
	switch d.Kind {
	case Quoted:
		return `"` + d.Filename + `"`
	case Bracketed:
		return "<" + d.Filename + ">"
	}
	return d.Filename
}

// Record holds the per-file parsed facts described in spec.md §3 "File
// record", plus the resolver-populated sets that the edge installer later
// consumes.
type Record struct {
	Digest    pathutil.Digest
	HashValid bool

	Includes        []IncludeDirective
	Implements      []pathutil.ScopedName // fully-qualified impl names (method bodies, free functions)
	ClassDecls      []pathutil.ScopedName // declared class names
	FuncDecls       []pathutil.ScopedName // declared free-function names
	Inheritances    []pathutil.ScopedName // base-class references from declared inheritances
	UsingNamespaces []pathutil.ScopedName // `using namespace` directives active at file scope

	// Populated by the symbol resolver (internal/resolver), consumed by the
	// edge installer (internal/graph).
	ImplementFiles []*Node // files declaring a symbol this file implements
	BaseClassFiles []*Node // files declaring a base class this file's classes derive from
	FuncImplFiles  []*Node // ImplementFiles, function-declaration partition
	ClassImplFiles []*Node // ImplementFiles, class-declaration partition
}

// SwapParsedData exchanges the lazily-parsed fields (but not the content
// digest or resolver-populated sets) between two records. Used by the
// snapshot diff to transfer a prior run's parse results onto an unmodified
// file instead of re-parsing it. Mirrors
// FileRecord::swapParsedData in original_source/lib/types/file_tree.cpp.
func (r *Record) SwapParsedData(o *Record) {
	r.Includes, o.Includes = o.Includes, r.Includes
	r.Implements, o.Implements = o.Implements, r.Implements
	r.ClassDecls, o.ClassDecls = o.ClassDecls, r.ClassDecls
	r.FuncDecls, o.FuncDecls = o.FuncDecls, r.FuncDecls
	r.Inheritances, o.Inheritances = o.Inheritances, r.Inheritances
	r.UsingNamespaces, o.UsingNamespaces = o.UsingNamespaces, r.UsingNamespaces
}

// ImplementsUnqualified reports whether the file's implement-set contains
// the exact unqualified (single-segment) symbol want, e.g. "main". Used by
// the "contains main" check in internal/affected.
func (r *Record) ImplementsUnqualified(want string) bool {
	for _, impl := range r.Implements {
		if len(impl) == 1 && impl[0].Name == want {
			return true
		}
	}
	return false
}
