// Package pathutil provides platform-normalized relative paths, hashed name
// segments, and scoped symbol names shared by the rest of the analyzer.
//
// Grounded on SplittedPath in original_source/lib (a slash-normalized,
// segment-aware path type) and restated in the idiom of
// golang-dep/pkgtree/pkgtree.go, which normalizes every import path through
// filepath.ToSlash at the point of construction rather than carrying a
// platform-specific separator through the rest of the program.
package pathutil

import "strings"

// RelPath is an ordered sequence of path segments, always slash-normalized
// regardless of the host OS. Two RelPaths are equal iff their segment slices
// are equal.
type RelPath struct {
	segments []string
}

// NewRelPath splits s on both '/' and '\' and resolves "." and ".." segments
// relative to an implicit empty base, mirroring SplittedPath's normalization
// in the original C++ source.
func NewRelPath(s string) RelPath {
	return RelPath{segments: clean(splitAny(s))}
}

// RelPathFromSegments builds a RelPath directly from already-split segments,
// still applying "." / ".." resolution.
func RelPathFromSegments(segs ...string) RelPath {
	return RelPath{segments: clean(segs)}
}

func splitAny(s string) []string {
	s = strings.ReplaceAll(s, "\\", "/")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// clean resolves "." and ".." segments. A leading ".." past the root is kept
// as-is (callers that walk a tree treat an unresolvable ".." as "no match").
func clean(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		switch s {
		case ".":
			continue
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else {
				out = append(out, s)
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

// Segments returns the path's ordered segments. The returned slice must not
// be mutated.
func (p RelPath) Segments() []string { return p.segments }

// String renders the path using '/' as separator, regardless of host OS.
func (p RelPath) String() string { return strings.Join(p.segments, "/") }

// Empty reports whether the path has no segments (the tree root).
func (p RelPath) Empty() bool { return len(p.segments) == 0 }

// Join appends a single already-clean segment and returns the new path.
func (p RelPath) Join(seg string) RelPath {
	segs := make([]string, len(p.segments), len(p.segments)+1)
	copy(segs, p.segments)
	return RelPath{segments: append(segs, seg)}
}

// Append concatenates other's segments onto p, re-resolving "." and "..".
func (p RelPath) Append(other RelPath) RelPath {
	segs := make([]string, 0, len(p.segments)+len(other.segments))
	segs = append(segs, p.segments...)
	segs = append(segs, other.segments...)
	return RelPath{segments: clean(segs)}
}

// Dir returns the path without its final segment. Dir of the root is root.
func (p RelPath) Dir() RelPath {
	if len(p.segments) == 0 {
		return p
	}
	return RelPath{segments: p.segments[:len(p.segments)-1]}
}

// Base returns the final segment, or "" for the root.
func (p RelPath) Base() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// RelativeTo expresses p relative to base, by stripping base's segments as a
// common prefix. If base is not a prefix of p, p is returned unchanged (the
// output lists are always constructed against a base that is a true ancestor
// in practice, per Config.SrcBase / Config.TestBase).
func (p RelPath) RelativeTo(base RelPath) RelPath {
	bs := base.segments
	if len(bs) > len(p.segments) {
		return p
	}
	for i, s := range bs {
		if p.segments[i] != s {
			return p
		}
	}
	return RelPath{segments: p.segments[len(bs):]}
}

// Equal reports whether two RelPaths have identical segments.
func (p RelPath) Equal(o RelPath) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}
