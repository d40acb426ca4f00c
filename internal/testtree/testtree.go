// Package testtree is a test-only helper that materializes a fixture
// directory tree into a fresh temp directory, so package tests can exercise
// internal/traverse and internal/analyzer against real files on disk
// without mutating the checked-in fixtures.
//
// Uses github.com/termie/go-shutil's CopyTree, the same library the teacher
// vendors for fixture staging in its own test suite.
package testtree

import (
	"os"
	"testing"

	shutil "github.com/termie/go-shutil"
)

// Stage copies the fixture directory at srcDir into a new temp directory
// and returns its path. The temp directory is registered for cleanup via
// t.Cleanup.
func Stage(t *testing.T, srcDir string) string {
	t.Helper()

	dst, err := os.MkdirTemp("", "lazyut-fixture-")
	if err != nil {
		t.Fatalf("creating staging dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dst) })

	// CopyTree refuses to copy into an existing destination, so hand it a
	// path one level below the directory MkdirTemp already created.
	staged := dst + "/tree"
	if err := shutil.CopyTree(srcDir, staged, nil); err != nil {
		t.Fatalf("staging fixture tree %s: %v", srcDir, err)
	}
	return staged
}
