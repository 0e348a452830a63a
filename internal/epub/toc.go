package epub

import (
	"fmt"
	"path"
)

// Heading is one heading of a rendered chapter. Level 1 is the top level.
type Heading struct {
	Text  string
	Level int
	ID    string
}

// Entry is the table of contents record of one chapter file.
type Entry struct {
	File    string
	Headers []Heading
}

// Toc accumulates one Entry per chapter, in the order AddChapter is called.
type Toc struct {
	entries []Entry
}

// AddChapter appends the entry for file. Callers must add chapters in spine order.
func (t *Toc) AddChapter(file string, headings []Heading) {
	t.entries = append(t.entries, Entry{
		File:    file,
		Headers: append([]Heading(nil), headings...),
	})
}

// Entries returns a copy of the entries in insertion order.
func (t *Toc) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of chapters.
func (t *Toc) Len() int { return len(t.entries) }

// NavPoint is a node of the NCX navigation map.
type NavPoint struct {
	ID        string
	PlayOrder int
	Label     string
	Src       string
	Children  []*NavPoint
}

// NavMap folds the flat heading lists into a navigation tree.
//
// A heading becomes a child of the closest preceding heading of a lower level
// in the same chapter. Play order follows document order across all chapters.
// A chapter without headings contributes one point labelled with its file name.
func (t *Toc) NavMap() []*NavPoint {
	var roots []*NavPoint
	order := 0
	next := func(label, src string) *NavPoint {
		order++
		return &NavPoint{
			ID:        fmt.Sprintf("navpoint-%d", order),
			PlayOrder: order,
			Label:     label,
			Src:       src,
		}
	}

	for _, e := range t.entries {
		if len(e.Headers) == 0 {
			roots = append(roots, next(path.Base(e.File), e.File))
			continue
		}

		type frame struct {
			level int
			point *NavPoint
		}
		var stack []frame
		for _, h := range e.Headers {
			src := e.File
			if h.ID != "" {
				src += "#" + h.ID
			}
			p := next(h.Text, src)
			for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				roots = append(roots, p)
			} else {
				parent := stack[len(stack)-1].point
				parent.Children = append(parent.Children, p)
			}
			stack = append(stack, frame{level: h.Level, point: p})
		}
	}
	return roots
}

// Depth returns the nesting depth of a navigation tree, at least 1.
func Depth(points []*NavPoint) int {
	depth := 1
	for _, p := range points {
		if len(p.Children) > 0 {
			depth = max(depth, 1+Depth(p.Children))
		}
	}
	return depth
}
