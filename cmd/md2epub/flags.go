package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	buildDir    string
	theme       string
	metadata    string
	output      string
	config      string
	workers     int
	compileOnly bool
	packOnly    bool
	watch       bool
	quiet       bool
	verbose     bool
	version     bool
	help        bool
}

// newFlagSet declares the flags on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("md2epub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// Locations
	fs.StringVarP(&f.buildDir, "build", "b", "", "build directory (default <source>/_build)")
	fs.StringVarP(&f.metadata, "metadata", "m", "", "book description file (default <source>/metadata.yaml)")
	fs.StringVarP(&f.output, "output", "o", "", "archive path (default <build>/output.epub)")
	fs.StringVarP(&f.theme, "theme", "t", "", "built-in theme name or theme directory")

	// Stages
	fs.BoolVarP(&f.compileOnly, "compile-only", "c", false, "build without packing")
	fs.BoolVarP(&f.packOnly, "pack-only", "p", false, "pack a previous build")
	fs.BoolVar(&f.watch, "watch", false, "rebuild when sources change")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel chapter renders (0 = auto)")

	// Common
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every file processed")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	return fs
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
