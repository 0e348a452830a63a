package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "ISO date", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "european", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long month name", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "short month and year", format: "MMM YY", want: "Jan 06"},
		{name: "bracketed literal", format: "[Printed] YYYY", want: "Printed 2006"},
		{name: "literal characters kept", format: "YYYY.M", want: "2006.1"},
		{name: "empty format", format: "", wantErr: ErrInvalidDate},
		{name: "unclosed bracket", format: "[oops YYYY", wantErr: ErrInvalidDate},
		{name: "too long", format: "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Layout(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Layout(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty stays empty", value: "", want: ""},
		{name: "auto", value: "auto", want: "2024-03-05"},
		{name: "auto is case-insensitive", value: "AUTO", want: "2024-03-05"},
		{name: "auto with format", value: "auto:DD/MM/YYYY", want: "05/03/2024"},
		{name: "auto with preset", value: "auto:year", want: "2024"},
		{name: "literal year", value: "1998", want: "1998"},
		{name: "literal year-month", value: "1998-07", want: "1998-07"},
		{name: "literal full date", value: "1998-07-21", want: "1998-07-21"},
		{name: "RFC 3339 timestamp", value: "1998-07-21T08:00:00Z", want: "1998-07-21T08:00:00Z"},
		{name: "free text rejected", value: "last summer", wantErr: ErrInvalidDate},
		{name: "auto with empty format", value: "auto:", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(tt.value, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
