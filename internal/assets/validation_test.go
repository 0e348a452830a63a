package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{name: "template file", input: "chapter.xhtml"},
		{name: "nested control document", input: "META-INF/container.xml"},
		{name: "stylesheet", input: "style.less"},

		// Invalid names
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "absolute", input: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: `META-INF\container.xml`, wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../secret.xhtml", wantErr: ErrInvalidAssetName},
		{name: "inner traversal", input: "a/../../b", wantErr: ErrInvalidAssetName},
		{name: "dot segment", input: "./cover.xhtml", wantErr: ErrInvalidAssetName},
		{name: "trailing slash", input: "META-INF/", wantErr: ErrInvalidAssetName},
		{name: "double slash", input: "META-INF//container.xml", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"default", false},
		{"my_theme-2", false},
		{"", true},
		{"themes/dark", true},
		{"dark.v2", true},
		{`a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			err := ValidateThemeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThemeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateThemeName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
		})
	}
}
