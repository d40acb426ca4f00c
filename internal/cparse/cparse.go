// Package cparse is LazyUT's default parser collaborator: a best-effort,
// line-oriented scanner that pulls includes, declarations, definitions,
// inheritance clauses and using-namespace directives out of C/C++-like
// source text.
//
// This is explicitly not a C++ front end (spec.md's non-goals rule out
// template instantiation, macro expansion and full grammar parsing); it is
// grounded on the shape of facts original_source/lib/types/file_tree.cpp
// and original_source/lib/dependency_analyzer.hpp consume — IncludeDirective,
// scoped implementation names, class declarations with base-class lists,
// and using-namespace — and extracts them with regular expressions in the
// style of a linter rather than a compiler.
package cparse

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/pkg/errors"
)

var (
	includeRe = regexp.MustCompile(`^\s*#\s*include\s*(?:"([^"]+)"|<([^>]+)>)`)
	usingNsRe = regexp.MustCompile(`^\s*using\s+namespace\s+([A-Za-z_][A-Za-z0-9_:]*)\s*;`)

	// classRe matches a class/struct declaration, optionally carrying a
	// ": public Base1, private Base2" inheritance clause, up to the opening
	// brace or a forward-declaration semicolon.
	classRe = regexp.MustCompile(`^\s*(?:class|struct)\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?::\s*([^{;]+))?\s*[{;]`)
	baseRe  = regexp.MustCompile(`(?:public|private|protected)\s+(?:virtual\s+)?([A-Za-z_][A-Za-z0-9_:]*)`)

	// defRe matches a function/method definition: an optional scoped name
	// ending in "(...)" immediately followed by "{" (ignoring a trailing
	// const/override/noexcept qualifier run before the brace). It is
	// deliberately loose about the return type, which this scanner never
	// needs.
	defRe = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_:]*)\s*\([^;{}]*\)\s*(?:const\s*)?(?:override\s*)?(?:noexcept\s*)?\{`)

	// declRe matches a free-function prototype: same call shape as defRe
	// but terminated by ";" instead of "{".
	declRe = regexp.MustCompile(`^\s*[A-Za-z_][\w:<>, *&]*?\s+([A-Za-z_][A-Za-z0-9_]*)\s*\([^;{}]*\)\s*;\s*$`)
)

// Parse scans r (the content of one source file) and fills the corresponding
// fields of rec. Existing fields are overwritten, not appended to.
func Parse(rec *filetree.Record, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rec.Includes = nil
	rec.Implements = nil
	rec.ClassDecls = nil
	rec.FuncDecls = nil
	rec.Inheritances = nil
	rec.UsingNamespaces = nil

	for scanner.Scan() {
		line := scanner.Text()

		if m := includeRe.FindStringSubmatch(line); m != nil {
			if m[1] != "" {
				rec.Includes = append(rec.Includes, filetree.IncludeDirective{Kind: filetree.Quoted, Filename: normalizeSlashes(m[1])})
			} else {
				rec.Includes = append(rec.Includes, filetree.IncludeDirective{Kind: filetree.Bracketed, Filename: normalizeSlashes(m[2])})
			}
			continue
		}

		if m := usingNsRe.FindStringSubmatch(line); m != nil {
			rec.UsingNamespaces = append(rec.UsingNamespaces, pathutil.ParseScopedName(m[1]))
			continue
		}

		if m := classRe.FindStringSubmatch(line); m != nil {
			rec.ClassDecls = append(rec.ClassDecls, pathutil.NewScopedName(m[1]))
			if m[2] != "" {
				for _, base := range baseRe.FindAllStringSubmatch(m[2], -1) {
					rec.Inheritances = append(rec.Inheritances, pathutil.ParseScopedName(base[1]))
				}
			}
			continue
		}

		if m := defRe.FindStringSubmatch(line); m != nil {
			rec.Implements = append(rec.Implements, pathutil.ParseScopedName(m[1]))
			continue
		}

		if m := declRe.FindStringSubmatch(line); m != nil {
			rec.FuncDecls = append(rec.FuncDecls, pathutil.NewScopedName(m[1]))
			continue
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scanning source")
	}
	return nil
}

func normalizeSlashes(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}
