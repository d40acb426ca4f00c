package graph

import (
	"testing"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
)

func TestInstallIncludeEdge(t *testing.T) {
	tree := filetree.New("/proj")
	a := tree.AddFile(pathutil.NewRelPath("a.cpp"))
	b := tree.AddFile(pathutil.NewRelPath("b.hpp"))
	a.Record.Includes = []filetree.IncludeDirective{{Kind: filetree.Quoted, Filename: "b.hpp"}}

	Install(tree)

	if _, ok := a.ExplicitDeps[b]; !ok {
		t.Fatal("a.cpp should explicitly depend on b.hpp")
	}
	if _, ok := b.ExplicitDepBy[a]; !ok {
		t.Fatal("b.hpp should be explicitly depended on by a.cpp")
	}
}

func TestInstallImplementsEdgeIsReversed(t *testing.T) {
	tree := filetree.New("/proj")
	header := tree.AddFile(pathutil.NewRelPath("foo.hpp"))
	impl := tree.AddFile(pathutil.NewRelPath("foo.cpp"))
	impl.Record.ImplementFiles = []*filetree.Node{header}

	Install(tree)

	if _, ok := header.ExplicitDeps[impl]; !ok {
		t.Fatal("header should depend on the file implementing it")
	}
	if _, ok := impl.ExplicitDepBy[header]; !ok {
		t.Fatal("implementing file should have header as a dependent-by")
	}
}

func TestInstallInheritanceEdge(t *testing.T) {
	tree := filetree.New("/proj")
	derived := tree.AddFile(pathutil.NewRelPath("derived.hpp"))
	base := tree.AddFile(pathutil.NewRelPath("base.hpp"))
	derived.Record.BaseClassFiles = []*filetree.Node{base}

	Install(tree)

	if _, ok := derived.ExplicitDeps[base]; !ok {
		t.Fatal("derived should depend on its base class file")
	}
}

func TestClosureIncludesSelf(t *testing.T) {
	tree := filetree.New("/proj")
	a := tree.AddFile(pathutil.NewRelPath("a.cpp"))

	Closure(tree)

	if _, ok := a.Deps[a]; !ok {
		t.Fatal("a node should be a member of its own Deps closure")
	}
	if _, ok := a.DepBy[a]; !ok {
		t.Fatal("a node should be a member of its own DepBy closure")
	}
}

func TestClosureTransitiveChain(t *testing.T) {
	tree := filetree.New("/proj")
	a := tree.AddFile(pathutil.NewRelPath("a.cpp"))
	b := tree.AddFile(pathutil.NewRelPath("b.hpp"))
	c := tree.AddFile(pathutil.NewRelPath("c.hpp"))
	a.ExplicitDeps[b] = struct{}{}
	b.ExplicitDepBy[a] = struct{}{}
	b.ExplicitDeps[c] = struct{}{}
	c.ExplicitDepBy[b] = struct{}{}

	Closure(tree)

	if _, ok := a.Deps[c]; !ok {
		t.Fatal("a should transitively depend on c through b")
	}
	if _, ok := c.DepBy[a]; !ok {
		t.Fatal("c should transitively be depended on by a through b")
	}
}

// TestClosureCycleSafety mirrors spec.md scenario S5: x.h includes y.h and
// y.h includes x.h. Closure must terminate and both headers must end up in
// each other's Deps.
func TestClosureCycleSafety(t *testing.T) {
	tree := filetree.New("/proj")
	x := tree.AddFile(pathutil.NewRelPath("x.h"))
	y := tree.AddFile(pathutil.NewRelPath("y.h"))
	x.ExplicitDeps[y] = struct{}{}
	y.ExplicitDepBy[x] = struct{}{}
	y.ExplicitDeps[x] = struct{}{}
	x.ExplicitDepBy[y] = struct{}{}

	Closure(tree) // must terminate despite the x<->y cycle

	if _, ok := x.Deps[y]; !ok {
		t.Fatal("x should reach y despite the cycle")
	}
	if _, ok := y.Deps[x]; !ok {
		t.Fatal("y should reach x despite the cycle")
	}
	if _, ok := x.Deps[x]; !ok {
		t.Fatal("x should still reach itself")
	}
}

func TestClosureSpansMultipleTrees(t *testing.T) {
	srcTree := filetree.New("/proj")
	testTree := filetree.New("/proj")
	header := srcTree.AddFile(pathutil.NewRelPath("foo.hpp"))
	testFile := testTree.AddFile(pathutil.NewRelPath("foo_test.cpp"))
	testFile.ExplicitDeps[header] = struct{}{}
	header.ExplicitDepBy[testFile] = struct{}{}

	Closure(srcTree, testTree)

	if _, ok := testFile.Deps[header]; !ok {
		t.Fatal("closure must follow edges across tree boundaries")
	}
}

func TestCheckSymmetryAfterInstall(t *testing.T) {
	tree := filetree.New("/proj")
	a := tree.AddFile(pathutil.NewRelPath("a.cpp"))
	tree.AddFile(pathutil.NewRelPath("b.hpp"))
	a.Record.Includes = []filetree.IncludeDirective{{Kind: filetree.Quoted, Filename: "b.hpp"}}
	Install(tree)

	if err := CheckSymmetry(tree); err != nil {
		t.Fatalf("expected symmetric edges, got %v", err)
	}
}
