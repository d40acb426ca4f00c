// Command lazyut detects which tests are affected by the current edits to
// a header-based C/C++-like source tree.
//
// Grounded on cmd/dep/main.go's Config{Args, Stdout, Stderr} + Run()
// (exitCode int) shape; LazyUT exposes one operation rather than
// dep's subcommand set, so it uses a single flag.FlagSet instead of dep's
// command-dispatch table, in the style of
// original_source/lib/command_line_args.cpp's single parseArguments call.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AstyCo/lazyut/internal/analyzer"
	"github.com/AstyCo/lazyut/internal/config"
	"github.com/AstyCo/lazyut/internal/pathutil"
	"github.com/AstyCo/lazyut/log"
)

func main() {
	c := &Config{
		Args:   os.Args[1:],
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Run())
}

// Config specifies a full invocation of lazyut. Mirrors cmd/dep's Config.
type Config struct {
	Args           []string
	Stdout, Stderr io.Writer
}

// Run parses flags, runs one analysis pass, writes the output lists and the
// refreshed snapshots, and returns a process exit code. Per spec.md §6: 0
// on success, nonzero only when the flags or the -config overlay cannot be
// parsed — any engine-level resolution gap degrades the affected list rather
// than failing the run.
func (c *Config) Run() int {
	cfg, tomlPath, err := parseFlags(c.Args, c.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(c.Stderr, err)
		return 1
	}

	if tomlPath != "" {
		if err := config.ApplyTOML(&cfg, tomlPath); err != nil {
			fmt.Fprintln(c.Stderr, err)
			return 1
		}
	}

	logger := log.New(c.Stderr)
	sys := analyzer.New(cfg, logger)

	result, err := sys.Run(context.Background())
	if err != nil {
		fmt.Fprintln(c.Stderr, err)
		return 0
	}

	if err := writeOutputs(cfg, result); err != nil {
		fmt.Fprintln(c.Stderr, err)
		return 0
	}

	if err := sys.SaveSnapshots(); err != nil {
		fmt.Fprintln(c.Stderr, err)
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (config.Config, string, error) {
	fs := flag.NewFlagSet("lazyut", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		root, srcDirs, testDirs, outDir, inDir string
		extensions, ignore, includePaths       string
		extraDeps, srcBase, testBase           string
		noMain, verbal                         bool
		tomlPath                               string
	)

	fs.StringVar(&root, "root", "", "file tree root directory (also -r)")
	fs.StringVar(&root, "r", "", "shorthand for -root")
	fs.StringVar(&srcDirs, "src-dirs", "", "comma-separated source directories, relative to root (also -s)")
	fs.StringVar(&srcDirs, "s", "", "shorthand for -src-dirs")
	fs.StringVar(&testDirs, "test-dirs", "", "comma-separated test directories, relative to root (also -t)")
	fs.StringVar(&testDirs, "t", "", "shorthand for -test-dirs")
	fs.StringVar(&outDir, "outdir", "", "output directory (also -o)")
	fs.StringVar(&outDir, "o", "", "shorthand for -outdir")
	fs.StringVar(&extraDeps, "deps", "", "path to JSON file of extra dependencies (also -d)")
	fs.StringVar(&extraDeps, "d", "", "shorthand for -deps")
	fs.StringVar(&inDir, "indir", "", "input directory, defaults to outdir (also -i)")
	fs.StringVar(&inDir, "i", "", "shorthand for -indir")
	fs.StringVar(&extensions, "extensions", "", "comma-separated recognized source extensions (also -e)")
	fs.StringVar(&extensions, "e", "", "shorthand for -extensions")
	fs.StringVar(&ignore, "ignore", "", "comma-separated ignored path substrings")
	fs.StringVar(&testBase, "test-base", "", "directory test paths are displayed relative to")
	fs.StringVar(&srcBase, "src-base", "", "directory source paths are displayed relative to")
	fs.StringVar(&includePaths, "include-paths", "", "comma-separated extra include search roots")
	fs.BoolVar(&noMain, "no-main", false, "exclude test files containing main() (also -m)")
	fs.BoolVar(&noMain, "m", false, "shorthand for -no-main")
	fs.BoolVar(&verbal, "verbal", false, "emit tracing to stderr (also -v)")
	fs.BoolVar(&verbal, "v", false, "shorthand for -verbal")
	fs.StringVar(&tomlPath, "config", "", "optional .lazyut.toml project config overlay")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, "", err
	}

	if root == "" || srcDirs == "" || testDirs == "" || outDir == "" {
		return config.Config{}, "", fmt.Errorf("lazyut: -root, -src-dirs, -test-dirs and -outdir are required")
	}

	cfg := config.Config{
		RootDir:          root,
		SrcDirs:          splitCSV(srcDirs),
		TestDirs:         splitCSV(testDirs),
		OutDir:           outDir,
		InDir:            inDir,
		Extensions:       splitCSV(extensions),
		IgnoreSubstrings: splitCSV(ignore),
		IncludePaths:     splitCSV(includePaths),
		ExtraDepsFile:    extraDeps,
		SrcBase:          srcBase,
		TestBase:         testBase,
		NoMain:           noMain,
		Verbal:           verbal,
		Filenames:        config.DefaultFilenames(),
	}
	return cfg, tomlPath, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeOutputs(cfg config.Config, result analyzer.Result) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	if err := writeList(cfg.OutDir+"/"+cfg.Filenames.SrcsAffected, result.SourceAffected); err != nil {
		return err
	}
	if err := writeList(cfg.OutDir+"/"+cfg.Filenames.TestsAffected, result.TestAffected); err != nil {
		return err
	}
	if err := writeList(cfg.OutDir+"/"+cfg.Filenames.TotalAffected, result.TotalAffected); err != nil {
		return err
	}
	if err := writeList(cfg.OutDir+"/"+cfg.Filenames.SrcModified, result.SourceModified); err != nil {
		return err
	}
	return writeList(cfg.OutDir+"/"+cfg.Filenames.TestModified, result.TestModified)
}

func writeList(path string, paths []pathutil.RelPath) error {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
