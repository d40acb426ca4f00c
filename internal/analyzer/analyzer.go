// Package analyzer orchestrates one end-to-end LazyUT run: traversal,
// content hashing, snapshot diffing, parsing, symbol resolution, edge
// installation, closure computation and affected-set extraction.
//
// Grounded on FileSystem in original_source/lib/types/file_system.hpp,
// which owns the source/test/extra-deps trees and drives the same
// analyzePhase sequence; System is its Go-idiomatic restatement, built as
// an explicit struct per SPEC_FULL.md's REDESIGN FLAG rather than the C++
// original's process-wide `clargs` global (command_line_args.cpp).
package analyzer

import (
	"context"
	"os"
	"runtime"

	"github.com/AstyCo/lazyut/internal/affected"
	"github.com/AstyCo/lazyut/internal/config"
	"github.com/AstyCo/lazyut/internal/cparse"
	"github.com/AstyCo/lazyut/internal/extradeps"
	"github.com/AstyCo/lazyut/internal/filetree"
	"github.com/AstyCo/lazyut/internal/graph"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/AstyCo/lazyut/internal/resolver"
	"github.com/AstyCo/lazyut/internal/snapshot"
	"github.com/AstyCo/lazyut/internal/traverse"
	"github.com/AstyCo/lazyut/internal/workerpool"
	"github.com/AstyCo/lazyut/log"
	"github.com/pkg/errors"
)

// System is the top-level context for one run: the source tree, the test
// tree, the extra-deps tree, and the configuration and logger shared across
// them. Mirrors FileSystem's srcTree/testTree/extraDepsTree trio.
type System struct {
	Config config.Config
	Logger *log.Logger

	SrcTree  *filetree.Tree
	TestTree *filetree.Tree
	// ExtraDepsTree holds placeholder nodes for extra-deps endpoints that
	// name neither a source nor a test file; see extradeps.Install.
	ExtraDepsTree *filetree.Tree

	resolver *resolver.Resolver
}

// New returns a System ready for Run, rooted at cfg.RootDir.
func New(cfg config.Config, logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	logger.SetVerbal(cfg.Verbal)
	return &System{
		Config:        cfg,
		Logger:        logger,
		SrcTree:       filetree.New(cfg.RootDir),
		TestTree:      filetree.New(cfg.RootDir),
		ExtraDepsTree: filetree.New(cfg.RootDir),
	}
}

// Result is everything a caller of Run needs to write the outputs spec.md
// §6 describes.
type Result struct {
	SourceAffected []pathutil.RelPath
	TestAffected   []pathutil.RelPath
	TotalAffected  []pathutil.RelPath
	SourceModified []pathutil.RelPath
	TestModified   []pathutil.RelPath
}

// Run executes the full pipeline described by spec.md §2's data-flow
// summary: traverse -> hash -> restore -> diff -> parse -> resolve -> wire
// edges -> close -> extract affected sets.
func (s *System) Run(ctx context.Context) (Result, error) {
	if err := s.buildTrees(); err != nil {
		return Result{}, err
	}

	s.SrcTree.RemoveEmptyDirectories()
	s.TestTree.RemoveEmptyDirectories()

	if errs := s.SrcTree.CalculateFileHashes(); len(errs) > 0 {
		s.logErrs(errs)
	}
	if errs := s.TestTree.CalculateFileHashes(); len(errs) > 0 {
		s.logErrs(errs)
	}

	s.diffAgainstSnapshots()

	if err := s.parseModified(ctx); err != nil {
		return Result{}, err
	}

	s.resolveSymbols()
	s.installExtraDeps()

	graph.Install(s.SrcTree)
	graph.Install(s.TestTree)
	graph.Closure(s.SrcTree, s.TestTree, s.ExtraDepsTree)

	if s.Config.NoMain {
		affected.LabelTestMains(s.TestTree)
	}

	return s.collectResult(), nil
}

func (s *System) logErrs(errs []error) {
	for _, err := range errs {
		s.Logger.Tracef("%v", err)
	}
}

func (s *System) buildTrees() error {
	opts := traverse.Options{Extensions: s.Config.Extensions, IgnoreSubstrings: s.Config.IgnoreSubstrings}

	for _, dir := range s.Config.SrcDirs {
		abs := filetreeJoin(s.Config.RootDir, dir)
		if err := traverse.ReadSources(s.SrcTree, abs, pathutil.NewRelPath(dir), opts); err != nil {
			return errors.Wrapf(err, "reading source dir %s", dir)
		}
	}
	for _, dir := range s.Config.TestDirs {
		abs := filetreeJoin(s.Config.RootDir, dir)
		if err := traverse.ReadSources(s.TestTree, abs, pathutil.NewRelPath(dir), opts); err != nil {
			return errors.Wrapf(err, "reading test dir %s", dir)
		}
	}
	s.TestTree.Root.Walk(func(n *filetree.Node) {
		if n.IsRegularFile() {
			n.SetFlag(filetree.TestFile)
		}
	})

	for _, p := range s.Config.IncludePaths {
		if err := s.SrcTree.AddIncludePath(pathutil.NewRelPath(p)); err != nil {
			s.Logger.Tracef("%v", err)
		}
	}
	// A test file's #include may name a source-tree header; letting the test
	// tree search the source tree's root as a fallback include path (and
	// vice versa) keeps include resolution working across the tree
	// boundary, since FileNode.Search only walks a node's own children and
	// has no notion of which Tree owns it.
	s.TestTree.IncludePaths = append(s.TestTree.IncludePaths, s.SrcTree.Root)
	s.SrcTree.IncludePaths = append(s.SrcTree.IncludePaths, s.TestTree.Root)

	return nil
}

func filetreeJoin(root, rel string) string {
	if root == "" {
		return rel
	}
	return root + "/" + rel
}

func (s *System) diffAgainstSnapshots() {
	srcSnapPath := s.Config.InputDir() + "/" + s.Config.Filenames.SrcFileTree
	testSnapPath := s.Config.InputDir() + "/" + s.Config.Filenames.TestFileTree

	restoredSrc, err := snapshot.Load(srcSnapPath)
	if err != nil {
		s.Logger.Tracef("loading source snapshot: %v", err)
	}
	restoredTest, err := snapshot.Load(testSnapPath)
	if err != nil {
		s.Logger.Tracef("loading test snapshot: %v", err)
	}

	s.SrcTree.DiffAgainstRestored(restoredSrc, s.Logger)
	s.TestTree.DiffAgainstRestored(restoredTest, s.Logger)
}

func (s *System) parseModified(ctx context.Context) error {
	width := runtime.GOMAXPROCS(0)

	var toParse []*filetree.Node
	collectModified := func(n *filetree.Node) {
		if n.IsRegularFile() && n.IsModified() {
			toParse = append(toParse, n)
		}
	}
	s.SrcTree.Root.Walk(collectModified)
	s.TestTree.Root.Walk(collectModified)

	job := func(_ context.Context, n *filetree.Node) error {
		path := joinRootPath(s, n)
		f, err := os.Open(path)
		if err != nil {
			s.Logger.Tracef("unreadable source file %s: %v", path, err)
			n.Record.HashValid = false
			return nil
		}
		defer f.Close()
		if err := cparse.Parse(&n.Record, f); err != nil {
			s.Logger.Tracef("parse error in %s: %v", path, err)
		}
		return nil
	}

	errs := workerpool.Run(ctx, toParse, width, job)
	if len(errs) > 0 {
		s.logErrs(errs)
	}
	s.SrcTree.State = filetree.Parsed
	s.TestTree.State = filetree.Parsed
	return nil
}

func joinRootPath(s *System, n *filetree.Node) string {
	if s.Config.RootDir == "" {
		return n.Path().String()
	}
	return s.Config.RootDir + "/" + n.Path().String()
}

func (s *System) resolveSymbols() {
	s.resolver = resolver.New()

	declare := func(n *filetree.Node) {
		if !n.IsRegularFile() {
			return
		}
		for _, cls := range n.Record.ClassDecls {
			s.resolver.DeclareClass(cls, n)
		}
		for _, fn := range n.Record.FuncDecls {
			s.resolver.DeclareFunction(fn, n)
		}
		for _, ns := range n.Record.UsingNamespaces {
			s.resolver.UseNamespace(ns)
		}
	}
	s.SrcTree.Root.Walk(declare)
	s.TestTree.Root.Walk(declare)

	resolveRefs := func(n *filetree.Node) {
		if !n.IsRegularFile() {
			return
		}
		for _, impl := range n.Record.Implements {
			res := s.resolver.ResolveImplementation(impl)
			for _, f := range res.Files {
				node := f.(*filetree.Node)
				n.Record.ImplementFiles = append(n.Record.ImplementFiles, node)
				if res.Class != nil {
					n.Record.ClassImplFiles = append(n.Record.ClassImplFiles, node)
				} else {
					n.Record.FuncImplFiles = append(n.Record.FuncImplFiles, node)
				}
			}
		}
		for _, base := range n.Record.Inheritances {
			for _, f := range s.resolver.ResolveInheritance(base) {
				n.Record.BaseClassFiles = append(n.Record.BaseClassFiles, f.(*filetree.Node))
			}
		}
	}
	s.SrcTree.Root.Walk(resolveRefs)
	s.TestTree.Root.Walk(resolveRefs)
}

func (s *System) installExtraDeps() {
	if s.Config.ExtraDepsFile == "" {
		return
	}
	f, err := os.Open(s.Config.ExtraDepsFile)
	if err != nil {
		s.Logger.Tracef("opening extra deps file: %v", err)
		return
	}
	defer f.Close()

	edges, err := extradeps.Read(f)
	if err != nil {
		s.Logger.Tracef("reading extra deps file: %v", err)
		return
	}
	extradeps.Install(edges, s.SrcTree, s.TestTree, s.ExtraDepsTree)
}

func (s *System) collectResult() Result {
	srcAffected := affected.Collect(s.SrcTree)
	testAffected := affected.Collect(s.TestTree)

	var res Result
	srcBase := pathutil.NewRelPath(s.Config.SrcBase)
	testBase := pathutil.NewRelPath(s.Config.TestBase)

	for _, n := range srcAffected {
		res.SourceAffected = append(res.SourceAffected, n.Path().RelativeTo(srcBase))
	}
	for _, n := range testAffected {
		if s.Config.NoMain && n.IsLabeled() {
			continue
		}
		res.TestAffected = append(res.TestAffected, n.Path().RelativeTo(testBase))
	}
	res.TotalAffected = append(append([]pathutil.RelPath{}, res.SourceAffected...), res.TestAffected...)

	s.SrcTree.Root.Walk(func(n *filetree.Node) {
		if n.IsRegularFile() && n.IsModified() {
			res.SourceModified = append(res.SourceModified, n.Path().RelativeTo(srcBase))
		}
	})
	s.TestTree.Root.Walk(func(n *filetree.Node) {
		if n.IsRegularFile() && n.IsModified() {
			res.TestModified = append(res.TestModified, n.Path().RelativeTo(testBase))
		}
	})

	return res
}

// SaveSnapshots persists both trees to the configured output directory.
// Mirrors the external `serialize(tree, path)` hook spec.md §6 describes.
func (s *System) SaveSnapshots() error {
	srcPath := s.Config.OutDir + "/" + s.Config.Filenames.SrcFileTree
	testPath := s.Config.OutDir + "/" + s.Config.Filenames.TestFileTree
	if err := snapshot.Save(s.SrcTree, srcPath); err != nil {
		return errors.Wrap(err, "saving source snapshot")
	}
	if err := snapshot.Save(s.TestTree, testPath); err != nil {
		return errors.Wrap(err, "saving test snapshot")
	}
	return nil
}
