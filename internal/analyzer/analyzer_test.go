package analyzer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/AstyCo/lazyut/internal/config"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/AstyCo/lazyut/internal/testtree"
	"github.com/AstyCo/lazyut/log"
)

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func basicConfig(root string) config.Config {
	return config.Config{
		RootDir:    root,
		SrcDirs:    []string{"src"},
		TestDirs:   []string{"test"},
		OutDir:     filepath.Join(root, "out"),
		Extensions: []string{".cpp", ".hpp"},
		SrcBase:    "src",
		TestBase:   "test",
		NoMain:     true,
		Filenames:  config.DefaultFilenames(),
	}
}

// TestRunFirstPassDiscoversEverythingModified exercises a full first-time
// run (no prior snapshot, spec.md §8 scenario S6) against the testdata/basic
// fixture: every file should come back modified and affected, includes and
// implements should cross from the test tree into the source tree, and the
// test file containing main() should be excluded from the affected test
// list under NoMain.
func TestRunFirstPassDiscoversEverythingModified(t *testing.T) {
	root := testtree.Stage(t, "testdata/basic")
	cfg := basicConfig(root)

	sys := New(cfg, log.New(io.Discard))
	result, err := sys.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	srcAffected := make([]string, len(result.SourceAffected))
	for i, p := range result.SourceAffected {
		srcAffected[i] = p.String()
	}
	if !contains(srcAffected, "foo.hpp") || !contains(srcAffected, "foo.cpp") {
		t.Fatalf("expected both source files affected, got %v", srcAffected)
	}

	testModified := make([]string, len(result.TestModified))
	for i, p := range result.TestModified {
		testModified[i] = p.String()
	}
	if !contains(testModified, "foo_test.cpp") {
		t.Fatalf("expected foo_test.cpp to be modified, got %v", testModified)
	}

	for _, p := range result.TestAffected {
		if p.String() == "foo_test.cpp" {
			t.Fatal("the test-main file should be excluded from TestAffected under NoMain")
		}
	}

	header := sys.SrcTree.Search(pathutil.NewRelPath("src/foo.hpp"))
	impl := sys.SrcTree.Search(pathutil.NewRelPath("src/foo.cpp"))
	if header == nil || impl == nil {
		t.Fatal("expected both source nodes to exist")
	}
	if _, ok := header.ExplicitDeps[impl]; !ok {
		t.Fatal("foo.hpp should depend on foo.cpp (the reversed implements edge)")
	}

	testNode := sys.TestTree.Search(pathutil.NewRelPath("test/foo_test.cpp"))
	if testNode == nil {
		t.Fatal("expected test node to exist")
	}
	if _, ok := testNode.ExplicitDeps[header]; !ok {
		t.Fatal("foo_test.cpp should depend on foo.hpp via the cross-tree bracketed include")
	}
	if !testNode.IsLabeled() {
		t.Fatal("foo_test.cpp declares main() and should be labeled a test-main file")
	}
}

// TestRunSecondPassSkipsUnchangedFiles exercises spec.md §8's snapshot-skip
// path: after saving a snapshot, a second run with no file changes should
// report nothing modified or affected.
func TestRunSecondPassSkipsUnchangedFiles(t *testing.T) {
	root := testtree.Stage(t, "testdata/basic")
	cfg := basicConfig(root)
	cfg.InDir = cfg.OutDir
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		t.Fatal(err)
	}

	first := New(cfg, log.New(io.Discard))
	if _, err := first.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := first.SaveSnapshots(); err != nil {
		t.Fatal(err)
	}

	second := New(cfg, log.New(io.Discard))
	result, err := second.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.SourceModified) != 0 {
		t.Fatalf("expected no modified source files on the second pass, got %v", result.SourceModified)
	}
	if len(result.SourceAffected) != 0 {
		t.Fatalf("expected no affected source files on the second pass, got %v", result.SourceAffected)
	}
}

// TestRunCycleSafetyAcrossFullPipeline exercises spec.md §8 scenario S5
// end-to-end: x.h and y.h mutually include each other, and the run must
// terminate with both headers reaching each other in the affected set.
func TestRunCycleSafetyAcrossFullPipeline(t *testing.T) {
	root := testtree.Stage(t, "testdata/cycle")
	cfg := config.Config{
		RootDir:    root,
		SrcDirs:    []string{"src"},
		OutDir:     filepath.Join(root, "out"),
		Extensions: []string{".h"},
		SrcBase:    "src",
		Filenames:  config.DefaultFilenames(),
	}

	sys := New(cfg, log.New(io.Discard))
	result, err := sys.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	affected := make([]string, len(result.SourceAffected))
	for i, p := range result.SourceAffected {
		affected[i] = p.String()
	}
	if !contains(affected, "x.h") || !contains(affected, "y.h") {
		t.Fatalf("expected both x.h and y.h affected despite the include cycle, got %v", affected)
	}
}
