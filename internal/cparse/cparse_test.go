package cparse

import (
	"strings"
	"testing"

	"github.com/AstyCo/lazyut/internal/filetree"
)

func TestParseIncludes(t *testing.T) {
	src := `#include "foo.hpp"
#include <vector>
`
	var rec filetree.Record
	if err := Parse(&rec, strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if len(rec.Includes) != 2 {
		t.Fatalf("expected 2 includes, got %d", len(rec.Includes))
	}
	if rec.Includes[0].Kind != filetree.Quoted || rec.Includes[0].Filename != "foo.hpp" {
		t.Fatalf("unexpected first include: %+v", rec.Includes[0])
	}
	if rec.Includes[1].Kind != filetree.Bracketed || rec.Includes[1].Filename != "vector" {
		t.Fatalf("unexpected second include: %+v", rec.Includes[1])
	}
}

func TestParseClassWithInheritance(t *testing.T) {
	src := `class Derived : public Base1, private Base2 {
public:
    void method();
};
`
	var rec filetree.Record
	if err := Parse(&rec, strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if len(rec.ClassDecls) != 1 || rec.ClassDecls[0].String() != "Derived" {
		t.Fatalf("unexpected class decls: %v", rec.ClassDecls)
	}
	if len(rec.Inheritances) != 2 {
		t.Fatalf("expected 2 base classes, got %d: %v", len(rec.Inheritances), rec.Inheritances)
	}
	if rec.Inheritances[0].String() != "Base1" || rec.Inheritances[1].String() != "Base2" {
		t.Fatalf("unexpected inheritances: %v", rec.Inheritances)
	}
}

func TestParseMethodImplementation(t *testing.T) {
	src := `void Foo::bar(int x) {
    return;
}
`
	var rec filetree.Record
	if err := Parse(&rec, strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if len(rec.Implements) != 1 || rec.Implements[0].String() != "Foo::bar" {
		t.Fatalf("unexpected implements: %v", rec.Implements)
	}
}

func TestParseUsingNamespace(t *testing.T) {
	src := `using namespace std;
`
	var rec filetree.Record
	if err := Parse(&rec, strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if len(rec.UsingNamespaces) != 1 || rec.UsingNamespaces[0].String() != "std" {
		t.Fatalf("unexpected using-namespaces: %v", rec.UsingNamespaces)
	}
}

func TestParseFreeFunctionDeclaration(t *testing.T) {
	src := `int computeSomething(int a, int b);
`
	var rec filetree.Record
	if err := Parse(&rec, strings.NewReader(src)); err != nil {
		t.Fatal(err)
	}
	if len(rec.FuncDecls) != 1 || rec.FuncDecls[0].String() != "computeSomething" {
		t.Fatalf("unexpected func decls: %v", rec.FuncDecls)
	}
}
