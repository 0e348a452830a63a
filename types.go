package md2epub

import (
	"fmt"

	"github.com/alnah/go-md2epub/internal/epub"
)

// DefaultStylesheet is the stylesheet path used when the description declares none.
const DefaultStylesheet = "stylesheet.css"

// Metadata describes the book. Field names follow metadata.yaml.
type Metadata struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Publisher   string `yaml:"publisher"`
	Language    string `yaml:"language"`
	Rights      string `yaml:"rights"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Cover       string `yaml:"cover"`      // source-relative image path
	Stylesheet  string `yaml:"stylesheet"` // source-relative; .css once built
	BookID      string `yaml:"book_id"`
	ResourceID  string `yaml:"resource_id"`
}

// ManifestItem is one file of the archive with its id and media type.
type ManifestItem = epub.Item

// Heading is a chapter heading. Level 1 is the top level.
type Heading = epub.Heading

// TocEntry holds the headings of one chapter document.
type TocEntry = epub.Entry

// State is the position of a Book in the build pipeline.
type State int

// Pipeline states. Transitions only move forward:
// Loaded -> Built -> Packed, or Loaded -> Packed against an earlier build.
const (
	StateUninitialized State = iota
	StateLoaded
	StateBuilt
	StatePacked
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoaded:
		return "loaded"
	case StateBuilt:
		return "built"
	case StatePacked:
		return "packed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects the stages Run executes.
type Mode int

// Run modes.
const (
	ModeAll   Mode = iota // build then pack
	ModeBuild             // build only
	ModePack              // pack a previous build
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeBuild:
		return "build"
	case ModePack:
		return "pack"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
