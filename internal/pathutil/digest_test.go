package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDigestFileStableAndContentSensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	d1, err := DigestFile(path)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := DigestFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Fatalf("digest of unchanged file should be stable")
	}

	if err := os.WriteFile(path, []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}
	d3, err := DigestFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d1 == d3 {
		t.Fatalf("digest should change when content changes")
	}
	if len(d3.Hex()) != 32 {
		t.Fatalf("Hex() should be 32 chars, got %d", len(d3.Hex()))
	}
}

func TestDigestFileMissing(t *testing.T) {
	if _, err := DigestFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
