package epub

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrUnknownMediaType is returned for file extensions outside the media type table.
var ErrUnknownMediaType = errors.New("unknown media type")

// MimeType is the content of the mandatory first archive entry.
const MimeType = "application/epub+zip"

var mediaTypes = map[string]string{
	".xhtml": "application/xhtml+xml",
	".html":  "application/xhtml+xml",
	".htm":   "application/xhtml+xml",
	".css":   "text/css",
	".ncx":   "application/x-dtbncx+xml",
	".opf":   "application/oebps-package+xml",
	".xml":   "application/xml",
	".js":    "text/javascript",
	".txt":   "text/plain",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ttf":   "application/x-font-ttf",
	".otf":   "application/vnd.ms-opentype",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
}

// MediaType returns the media type for p, based on its extension (case-insensitive).
func MediaType(p string) (string, error) {
	ext := strings.ToLower(path.Ext(p))
	if mt, ok := mediaTypes[ext]; ok {
		return mt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMediaType, p)
}
