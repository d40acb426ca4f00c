package traverse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
)

func writeTempFile(t *testing.T, dir, rel string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("// content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadSourcesFiltersExtensionsAndIgnoredPaths(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "foo.cpp")
	writeTempFile(t, dir, "foo.hpp")
	writeTempFile(t, dir, "README.md")
	writeTempFile(t, dir, "build/generated.cpp")

	tree := filetree.New(dir)
	opts := Options{
		Extensions:       []string{".cpp", ".hpp"},
		IgnoreSubstrings: []string{string(filepath.Separator) + "build" + string(filepath.Separator)},
	}

	if err := ReadSources(tree, dir, pathutil.RelPath{}, opts); err != nil {
		t.Fatal(err)
	}

	if tree.Search(pathutil.NewRelPath("foo.cpp")) == nil {
		t.Fatal("foo.cpp should have been added")
	}
	if tree.Search(pathutil.NewRelPath("foo.hpp")) == nil {
		t.Fatal("foo.hpp should have been added")
	}
	if tree.Search(pathutil.NewRelPath("README.md")) != nil {
		t.Fatal("README.md should have been rejected by extension filter")
	}
	if tree.Search(pathutil.NewRelPath("build/generated.cpp")) != nil {
		t.Fatal("build/generated.cpp should have been rejected by ignore filter")
	}
}

func TestReadSourcesWithNoExtensionFilterAcceptsEverything(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "notes.txt")

	tree := filetree.New(dir)
	if err := ReadSources(tree, dir, pathutil.RelPath{}, Options{}); err != nil {
		t.Fatal(err)
	}

	if tree.Search(pathutil.NewRelPath("notes.txt")) == nil {
		t.Fatal("notes.txt should have been added when no extension filter is set")
	}
}

func TestReadSourcesMissingDirectoryErrors(t *testing.T) {
	tree := filetree.New("/proj")
	if err := ReadSources(tree, "/does/not/exist", pathutil.RelPath{}, Options{}); err == nil {
		t.Fatal("expected an error for a missing source directory")
	}
}

func TestReadSourcesUsesTreeRelBase(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "foo.cpp")

	tree := filetree.New(dir)
	base := pathutil.NewRelPath("src")
	if err := ReadSources(tree, dir, base, Options{}); err != nil {
		t.Fatal(err)
	}

	if tree.Search(pathutil.NewRelPath("src/foo.cpp")) == nil {
		t.Fatal("foo.cpp should have been added under the tree-relative base")
	}
}
