package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveTheme(t *testing.T) {
	t.Parallel()

	t.Run("empty reference selects the default theme", func(t *testing.T) {
		t.Parallel()
		loader, err := ResolveTheme("")
		if err != nil {
			t.Fatalf("ResolveTheme(\"\") error = %v", err)
		}
		if loader.Source() != "embedded:themes/"+DefaultTheme {
			t.Errorf("Source() = %q", loader.Source())
		}
	})

	t.Run("built-in name", func(t *testing.T) {
		t.Parallel()
		loader, err := ResolveTheme("plain")
		if err != nil {
			t.Fatalf("ResolveTheme(plain) error = %v", err)
		}
		if _, ok := loader.(*EmbeddedLoader); !ok {
			t.Errorf("ResolveTheme(plain) = %T, want *EmbeddedLoader", loader)
		}
	})

	t.Run("directory path", func(t *testing.T) {
		t.Parallel()
		dir := writeTheme(t, map[string]string{"chapter.xhtml": "x"})
		loader, err := ResolveTheme(dir)
		if err != nil {
			t.Fatalf("ResolveTheme(dir) error = %v", err)
		}
		if _, ok := loader.(*FilesystemLoader); !ok {
			t.Errorf("ResolveTheme(dir) = %T, want *FilesystemLoader", loader)
		}
	})

	t.Run("disk theme does not fall back to the built-in one", func(t *testing.T) {
		t.Parallel()
		loader, err := ResolveTheme(t.TempDir())
		if err != nil {
			t.Fatalf("ResolveTheme() error = %v", err)
		}
		if _, err := loader.Load(CoverTemplate); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Load(cover.xhtml) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTheme("no-such-theme-xyz")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("ResolveTheme() error = %v, want ErrThemeNotFound", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTheme(filepath.Join(t.TempDir(), "gone"))
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("ResolveTheme() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func TestLoadStylesheet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		wantName string
		wantErr  error
	}{
		{
			name:     "less preferred",
			files:    map[string]string{"style.less": "@c: red;", "style.css": "p{}"},
			wantName: "style.less",
		},
		{
			name:     "css fallback",
			files:    map[string]string{"style.css": "p{}"},
			wantName: "style.css",
		},
		{
			name:    "neither",
			files:   map[string]string{"chapter.xhtml": "x"},
			wantErr: ErrStylesheetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, err := NewFilesystemLoader(writeTheme(t, tt.files))
			if err != nil {
				t.Fatalf("NewFilesystemLoader() error = %v", err)
			}
			name, content, err := LoadStylesheet(loader)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadStylesheet() error = %v, want %v", err, tt.wantErr)
				}
				if !strings.Contains(err.Error(), "style.less or style.css") {
					t.Errorf("error %q does not name the candidates", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStylesheet() error = %v", err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if content != tt.files[tt.wantName] {
				t.Errorf("content = %q, want %q", content, tt.files[tt.wantName])
			}
		})
	}
}
