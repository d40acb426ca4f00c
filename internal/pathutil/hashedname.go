package pathutil

import "hash/fnv"

// HashedName is a single path or scope segment paired with a precomputed
// hash, so that tree and trie lookups can key maps by an integer rather than
// re-hashing the string on every comparison. Mirrors HashedFileName /
// HashedString in original_source/lib.
type HashedName struct {
	Name string
	Hash uint64
}

// NewHashedName computes and stores the FNV-1a hash of name.
func NewHashedName(name string) HashedName {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return HashedName{Name: name, Hash: h.Sum64()}
}

// IsDot reports whether this segment is the "." self-reference.
func (h HashedName) IsDot() bool { return h.Name == "." }

// IsDotDot reports whether this segment is the ".." parent-reference.
func (h HashedName) IsDotDot() bool { return h.Name == ".." }

// ScopedName is a fully qualified symbolic name: a sequence of hashed
// segments such as {ns, Class, method} for the C++ name "ns::Class::method".
type ScopedName []HashedName

// ParseScopedName splits a "::"-delimited qualified name into a ScopedName.
// Empty components (as produced by a leading "::") are dropped.
func ParseScopedName(qualified string) ScopedName {
	var segs []string
	start := 0
	for i := 0; i+1 < len(qualified); i++ {
		if qualified[i] == ':' && qualified[i+1] == ':' {
			segs = append(segs, qualified[start:i])
			i++
			start = i + 1
		}
	}
	segs = append(segs, qualified[start:])

	out := make(ScopedName, 0, len(segs))
	for _, s := range segs {
		if s == "" {
			continue
		}
		out = append(out, NewHashedName(s))
	}
	return out
}

// NewScopedName builds a ScopedName directly from plain segment strings.
func NewScopedName(segs ...string) ScopedName {
	out := make(ScopedName, len(segs))
	for i, s := range segs {
		out[i] = NewHashedName(s)
	}
	return out
}

// String renders the scoped name back into "a::b::c" form.
func (s ScopedName) String() string {
	out := ""
	for i, h := range s {
		if i > 0 {
			out += "::"
		}
		out += h.Name
	}
	return out
}

// Tails returns every contiguous suffix of s, longest first: s, s[1:], s[2:],
// ..., s[len(s)-1:]. Used by the resolver's longest-suffix class match (see
// DESIGN.md for the exact tie-break chosen for spec.md Open Question (a)).
func (s ScopedName) Tails() []ScopedName {
	out := make([]ScopedName, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, s[i:])
	}
	return out
}
