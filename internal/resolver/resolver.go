package resolver

import "github.com/AstyCo/lazyut/internal/pathutil"

// Resolver holds the two scope trees spec.md §4.3 describes — one indexing
// class declarations, one indexing free-function declarations — plus the
// set of using-namespace prefixes registered while scanning declaration
// files. Mirrors DependencyAnalyzer's _rootClassDecls/_rootFuncDecls pair.
type Resolver struct {
	classes   *Trie
	functions *Trie

	// usingNamespaces is the set of namespace paths every implementation
	// file may additionally search from, in registration order. A real
	// compiler scopes using-directives per translation unit; LazyUT's
	// best-effort textual parser cannot reliably attribute one, so
	// (matching the non-goal in spec.md §7) every registered namespace is
	// treated as project-global.
	usingNamespaces []pathutil.ScopedName
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{classes: NewTrie(), functions: NewTrie()}
}

// DeclareClass records that ref declares class name. Mirrors
// DependencyAnalyzer::addClassImpl's decl-side counterpart (readDecls).
func (r *Resolver) DeclareClass(name pathutil.ScopedName, ref FileRef) {
	r.classes.Insert(name, ref)
}

// DeclareFunction records that ref declares free function name.
func (r *Resolver) DeclareFunction(name pathutil.ScopedName, ref FileRef) {
	r.functions.Insert(name, ref)
}

// UseNamespace registers name as an additional lookup root for every
// subsequent Resolve call.
func (r *Resolver) UseNamespace(name pathutil.ScopedName) {
	r.usingNamespaces = append(r.usingNamespaces, name)
}

// Result is the outcome of resolving one implementation name.
type Result struct {
	// Class is non-nil when the longest-suffix class match succeeded; Files
	// is then every file declaring that class (spec.md Open Question (a):
	// ties record all declaring files).
	Class *pathutil.ScopedName
	Files []FileRef
}

// ResolveImplementation finds the declaration(s) matching a qualified
// implementation name, per spec.md §4.3's longest-suffix class match:
//
//   - every contiguous suffix of name is tried, longest first;
//   - for a suffix of length >= 2, the last segment is a candidate method
//     and everything before it a candidate class scope; that scope is
//     looked up in the class trie, first from the global root, then from
//     every registered using-namespace root, in registration order;
//   - the first trie hit at any suffix wins outright — shorter suffixes are
//     never tried once a longer one matches;
//   - if no suffix yields a class match, name is looked up whole in the
//     function trie (a free function or a static/out-of-class definition).
//
// Mirrors DependencyAnalyzer::analyzeImpl / findClassForMethod /
// findScopedPrivate(SearchClass).
func (r *Resolver) ResolveImplementation(name pathutil.ScopedName) Result {
	for _, tail := range name.Tails() {
		if len(tail) < 2 {
			continue
		}
		classScope := tail[:len(tail)-1]
		if files := r.classes.Find(classScope); files != nil {
			cls := append(pathutil.ScopedName(nil), classScope...)
			return Result{Class: &cls, Files: files}
		}
		for _, ns := range r.usingNamespaces {
			root := r.classes.Namespace(ns)
			if root == nil {
				continue
			}
			if files := r.classes.FindFrom(root, classScope); files != nil {
				cls := append(pathutil.ScopedName(nil), classScope...)
				return Result{Class: &cls, Files: files}
			}
		}
	}

	if files := r.functions.Find(name); files != nil {
		return Result{Files: files}
	}
	for _, ns := range r.usingNamespaces {
		root := r.functions.Namespace(ns)
		if root == nil {
			continue
		}
		if files := r.functions.FindFrom(root, name); files != nil {
			return Result{Files: files}
		}
	}
	return Result{}
}

// ResolveInheritance resolves a base-class name found in an inheritance
// clause to its declaring file(s), trying the global root then every
// using-namespace root. Mirrors DependencyAnalyzer::analyzeInheritance.
func (r *Resolver) ResolveInheritance(name pathutil.ScopedName) []FileRef {
	if files := r.classes.Find(name); files != nil {
		return files
	}
	for _, ns := range r.usingNamespaces {
		root := r.classes.Namespace(ns)
		if root == nil {
			continue
		}
		if files := r.classes.FindFrom(root, name); files != nil {
			return files
		}
	}
	return nil
}
