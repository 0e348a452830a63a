package epub

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

// ErrDuplicateEntry is returned when an archive path is written twice.
var ErrDuplicateEntry = errors.New("duplicate archive entry")

// Writer writes an EPUB zip container. The stored mimetype entry is written by
// NewWriter, so it always comes first. Every other entry is deflated.
//
// Entries carry a zero modification time so identical inputs produce
// identical archives.
type Writer struct {
	zw      *zip.Writer
	written map[string]bool
	order   []string
}

// NewWriter starts a container on w and writes the mimetype entry.
func NewWriter(w io.Writer) (*Writer, error) {
	zw := zip.NewWriter(w)
	body := []byte(MimeType)
	hdr := &zip.FileHeader{
		Name:               "mimetype",
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(body),
		CompressedSize64:   uint64(len(body)),
		UncompressedSize64: uint64(len(body)),
	}
	// Raw entry: no data descriptor, so the content sits at offset 38.
	ew, err := zw.CreateRaw(hdr)
	if err != nil {
		return nil, fmt.Errorf("writing mimetype: %w", err)
	}
	if _, err := ew.Write(body); err != nil {
		return nil, fmt.Errorf("writing mimetype: %w", err)
	}
	return &Writer{
		zw:      zw,
		written: map[string]bool{"mimetype": true},
		order:   []string{"mimetype"},
	}, nil
}

// Has reports whether name has already been written.
func (w *Writer) Has(name string) bool { return w.written[name] }

// Entries returns the archive paths in write order.
func (w *Writer) Entries() []string { return append([]string(nil), w.order...) }

// Add writes data under name.
func (w *Writer) Add(name string, data []byte) error {
	ew, err := w.create(name)
	if err != nil {
		return err
	}
	if _, err := ew.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// AddFile copies the file at src into the archive under name.
func (w *Writer) AddFile(name, src string) error {
	f, err := os.Open(src) // #nosec G304 -- path from the build directory
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = f.Close() }()

	ew, err := w.create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(ew, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (w *Writer) create(name string) (io.Writer, error) {
	if w.written[name] {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	ew, err := w.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("creating entry %s: %w", name, err)
	}
	w.written[name] = true
	w.order = append(w.order, name)
	return ew, nil
}

// Close finishes the central directory. It does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
