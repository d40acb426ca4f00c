package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
)

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	tree := filetree.New(srcDir)
	a := tree.AddFile(pathutil.NewRelPath("a.cpp"))
	a.Record.Digest = pathutil.Digest{0x1}
	a.Record.HashValid = true
	a.Record.Implements = []pathutil.ScopedName{pathutil.ParseScopedName("Foo::bar")}

	path := filepath.Join(dir, "tree.bin")
	if err := Save(tree, path); err != nil {
		t.Fatal(err)
	}

	restored, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if restored == nil {
		t.Fatal("expected a restored tree, got nil")
	}
	if restored.State != filetree.Restored {
		t.Fatal("loaded tree should be marked Restored")
	}

	node := restored.Search(pathutil.NewRelPath("a.cpp"))
	if node == nil {
		t.Fatal("a.cpp should have round-tripped")
	}
	if node.Record.Digest != a.Record.Digest {
		t.Fatalf("digest mismatch: got %v want %v", node.Record.Digest, a.Record.Digest)
	}
	if !node.Record.HashValid {
		t.Fatal("HashValid should have round-tripped true")
	}
	if len(node.Record.Implements) != 1 || node.Record.Implements[0].String() != "Foo::bar" {
		t.Fatalf("Implements should have round-tripped, got %v", node.Record.Implements)
	}
}

func TestLoadMissingFileReturnsNilNil(t *testing.T) {
	tree, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	if err != nil {
		t.Fatalf("missing snapshot should not error, got %v", err)
	}
	if tree != nil {
		t.Fatal("missing snapshot should return a nil tree")
	}
}

func TestLoadCorruptFileReturnsNilNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.bin")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := Load(path)
	if err != nil {
		t.Fatalf("corrupt snapshot should degrade gracefully, got error %v", err)
	}
	if tree != nil {
		t.Fatal("corrupt snapshot should return a nil tree")
	}
}
