package main

import (
	"fmt"
	"io"
	"strings"

	md2epub "github.com/alnah/go-md2epub"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub [flags] [source-dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build an EPUB from metadata.yaml, markdown chapters and a theme.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source-dir    Directory holding metadata.yaml (default: current directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Locations:")
	fmt.Fprintln(w, "  -b, --build <dir>         Build directory (default: <source>/"+md2epub.BuildDirName+")")
	fmt.Fprintln(w, "  -m, --metadata <path>     Book description (default: <source>/"+md2epub.MetadataFile+")")
	fmt.Fprintln(w, "  -o, --output <path>       Archive path (default: <build>/"+md2epub.OutputName+")")
	fmt.Fprintln(w, "  -t, --theme <name|path>   Theme: "+strings.Join(md2epub.ThemeNames(), ", ")+", or a directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stages:")
	fmt.Fprintln(w, "  -c, --compile-only        Build without packing")
	fmt.Fprintln(w, "  -p, --pack-only           Pack a previous build")
	fmt.Fprintln(w, "      --watch               Rebuild when sources change")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel chapter renders (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every file processed")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2EPUB_CONFIG, MD2EPUB_THEME, MD2EPUB_BUILD_DIR, MD2EPUB_OUTPUT,")
	fmt.Fprintln(w, "  MD2EPUB_WORKERS, MD2EPUB_LOG_LEVEL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags override environment variables, which override the config file.")
}
