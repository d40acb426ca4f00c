// Package snapshot implements the binary snapshot codec (spec.md §6): the
// persisted record of a prior run's file tree, used to skip re-parsing
// unchanged files on the next one.
//
// This is one of the collaborators spec.md's Out of scope list hands to the
// outer layers; encoding/gob is used for the wire format rather than a
// third-party serializer because the format is private to this tool and
// never hand-edited, so gob's self-describing, versionable binary stream
// fits better than the TOML golang-dep uses for its human-editable lock
// file — see DESIGN.md. The file lock guarding the write is
// github.com/theckman/go-flock, matching the one already vendored by the
// teacher.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"os"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/pkg/errors"
	"github.com/theckman/go-flock"
)

// schemaVersion is bumped whenever the wire shape of entry changes. A
// mismatch causes Load to report it as a missing snapshot (spec.md §7:
// "Missing restored snapshot or wrong schema: fall back to full parse of
// all files; never abort").
const schemaVersion = 1

type document struct {
	Version int
	Entries []entry
}

// entry is the flattened, tree-independent encoding of one filetree.Node:
// its path, type, content digest, and parsed record fields. Relationship
// fields (ImplementFiles et al.) are never persisted — they are
// resolver-derived and rebuilt fresh on every run.
type entry struct {
	Path      []string
	IsDir     bool
	Digest    pathutil.Digest
	HashValid bool

	Includes        []filetree.IncludeDirective
	Implements      [][]pathutil.HashedName
	ClassDecls      [][]pathutil.HashedName
	FuncDecls       [][]pathutil.HashedName
	Inheritances    [][]pathutil.HashedName
	UsingNamespaces [][]pathutil.HashedName
}

func toScopedNames(in [][]pathutil.HashedName) []pathutil.ScopedName {
	out := make([]pathutil.ScopedName, len(in))
	for i, s := range in {
		out[i] = pathutil.ScopedName(s)
	}
	return out
}

func fromScopedNames(in []pathutil.ScopedName) [][]pathutil.HashedName {
	out := make([][]pathutil.HashedName, len(in))
	for i, s := range in {
		out[i] = []pathutil.HashedName(s)
	}
	return out
}

// Save gob-encodes every node of tree to path (directories as entries with
// IsDir set and no parsed fields, which Load skips), guarded by an
// advisory file lock and written via a temp-file-then-rename so a reader
// never observes a partially written snapshot. Mirrors the external
// `serialize(tree, path)` hook spec.md §6 describes.
func Save(tree *filetree.Tree, path string) error {
	fl := flock.NewFlock(path + ".lock")
	if err := fl.Lock(); err != nil {
		return errors.Wrap(err, "locking snapshot")
	}
	defer fl.Unlock()

	doc := document{Version: schemaVersion}
	tree.Root.Walk(func(n *filetree.Node) {
		e := entry{
			Path:      n.Path().Segments(),
			IsDir:     n.IsDirectory(),
			Digest:    n.Record.Digest,
			HashValid: n.Record.HashValid,
			Includes:  n.Record.Includes,
		}
		if n.IsRegularFile() {
			e.Implements = fromScopedNames(n.Record.Implements)
			e.ClassDecls = fromScopedNames(n.Record.ClassDecls)
			e.FuncDecls = fromScopedNames(n.Record.FuncDecls)
			e.Inheritances = fromScopedNames(n.Record.Inheritances)
			e.UsingNamespaces = fromScopedNames(n.Record.UsingNamespaces)
		}
		doc.Entries = append(doc.Entries, e)
	})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(doc); err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "writing snapshot temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "renaming snapshot into place")
	}
	return nil
}

// Load decodes the snapshot at path into a freestanding Tree with an empty
// root path (the restored tree is used only for its relative node paths and
// records, never for I/O). It returns (nil, nil) — not an error — when the file doesn't exist
// or fails to decode, per spec.md §7's graceful degrade-to-full-parse
// policy; callers treat a nil tree exactly like DiffAgainstRestored(nil).
func Load(path string) (*filetree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var doc document
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, nil
	}
	if doc.Version != schemaVersion {
		return nil, nil
	}

	tree := filetree.New("")
	for _, e := range doc.Entries {
		if e.IsDir {
			continue
		}
		rel := pathutil.RelPathFromSegments(e.Path...)
		if rel.Empty() {
			continue
		}
		node := tree.AddFile(rel)
		node.Record.Digest = e.Digest
		node.Record.HashValid = e.HashValid
		node.Record.Includes = e.Includes
		node.Record.Implements = toScopedNames(e.Implements)
		node.Record.ClassDecls = toScopedNames(e.ClassDecls)
		node.Record.FuncDecls = toScopedNames(e.FuncDecls)
		node.Record.Inheritances = toScopedNames(e.Inheritances)
		node.Record.UsingNamespaces = toScopedNames(e.UsingNamespaces)
	}
	tree.State = filetree.Restored
	return tree, nil
}
