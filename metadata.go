package md2epub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/dateutil"
	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// description mirrors metadata.yaml. "info" is the legacy name of "metadata".
type description struct {
	Metadata *Metadata `yaml:"metadata"`
	Info     *Metadata `yaml:"info"`
	Resource []string  `yaml:"resource"`
	Catalog  []string  `yaml:"catalog"`
}

var (
	errNoMetadata       = errors.New("neither a metadata nor an info section")
	errDuplicateChapter = errors.New("chapter listed twice in catalog")
	errReservedChapter  = errors.New("chapter output name is reserved for a generated page")
)

// readDescription loads and parses the description file.
func readDescription(p string) (*description, error) {
	data, err := os.ReadFile(p) // #nosec G304 -- user-selected description file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, wrap(ErrConfig, p, err)
		}
		return nil, wrap(ErrIO, p, err)
	}
	var d description
	if err := yamlutil.Unmarshal(data, &d); err != nil {
		return nil, wrap(ErrConfig, p, err)
	}
	return &d, nil
}

// normalize fills defaults and validates paths. It returns whether the book
// declared its own stylesheet.
func (m *Metadata) normalize(cfg *bookConfig) (styleDeclared bool, err error) {
	if m.Cover != "" {
		if m.Cover, err = fileutil.CleanRelative(m.Cover); err != nil {
			return false, fmt.Errorf("cover: %w", err)
		}
	}

	styleDeclared = m.Stylesheet != ""
	if !styleDeclared {
		m.Stylesheet = DefaultStylesheet
	} else if m.Stylesheet, err = fileutil.CleanRelative(m.Stylesheet); err != nil {
		return false, fmt.Errorf("stylesheet: %w", err)
	}

	if m.Date, err = dateutil.Resolve(m.Date, cfg.now()); err != nil {
		return false, fmt.Errorf("date: %w", err)
	}

	if m.BookID == "" {
		m.BookID = "urn:uuid:" + uuid.New().String()
	}
	if m.ResourceID == "" {
		m.ResourceID = "urn:uuid:" + uuid.New().String()
	}
	return styleDeclared, nil
}

// cleanCatalog validates chapter paths and rejects duplicates, which would
// map two spine entries to one document. A chapter whose output name is one
// of the generated pages at the archive root is rejected too.
func cleanCatalog(entries []string) ([]string, error) {
	seen := make(map[string]bool, len(entries))
	reserved := make(map[string]bool, len(frontMatter)+2)
	for _, n := range frontMatter {
		reserved[n] = true
	}
	reserved[assets.PackageTemplate] = true
	reserved[assets.NCXTemplate] = true

	catalog := make([]string, 0, len(entries))
	for _, e := range entries {
		p, err := fileutil.CleanRelative(e)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		out := fileutil.ChangeExt(p, "xhtml")
		if reserved[out] {
			return nil, fmt.Errorf("%w: %s renders to %s", errReservedChapter, e, out)
		}
		if seen[out] {
			return nil, fmt.Errorf("%w: %s", errDuplicateChapter, e)
		}
		seen[out] = true
		catalog = append(catalog, p)
	}
	return catalog, nil
}

// listResources returns the visible files directly inside each declared
// resource directory, as dir/file. Directories that do not exist are skipped.
func listResources(sourceDir string, dirs []string, cfg *bookConfig) (cleaned, files []string, err error) {
	for _, d := range dirs {
		rel, err := fileutil.CleanRelative(d)
		if err != nil {
			return nil, nil, fmt.Errorf("resource: %w", err)
		}
		cleaned = append(cleaned, rel)

		abs := filepath.Join(sourceDir, filepath.FromSlash(rel))
		if !fileutil.DirExists(abs) {
			cfg.logger.Debug("resource directory skipped", "dir", rel)
			continue
		}
		names, err := fileutil.ListFiles(abs)
		if err != nil {
			return nil, nil, wrap(ErrIO, abs, err)
		}
		for _, n := range names {
			files = append(files, path.Join(rel, n))
		}
	}
	return cleaned, files, nil
}
