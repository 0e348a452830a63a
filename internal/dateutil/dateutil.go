// Package dateutil resolves the publication date of a book description.
//
// A date is either a literal W3C date (YYYY, YYYY-MM, YYYY-MM-DD or a full
// RFC 3339 timestamp, as expected by dc:date) or the keyword "auto", which is
// replaced by the build date. "auto:FORMAT" renders the build date with a
// user-friendly format made of the tokens YYYY, YY, MMMM, MMM, MM, M, DD, D.
// Bracketed text in a format is copied literally: "[Year] YYYY".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate indicates an unusable date or date format.
var ErrInvalidDate = errors.New("invalid date")

// MaxFormatLength limits format string length to prevent abuse.
const MaxFormatLength = 50

// w3cLayouts are the literal date shapes accepted for dc:date.
var w3cLayouts = []string{"2006", "2006-01", "2006-01-02", time.RFC3339}

// formatTokens is ordered longest first for greedy matching.
var formatTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for "auto:NAME".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"year":     "YYYY",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout converts a token format into a Go time layout.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrInvalidDate)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDate, MaxFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDate, format)
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		matched := false
		for _, t := range formatTokens {
			if strings.HasPrefix(rest, t.token) {
				b.WriteString(t.layout)
				rest = rest[len(t.token):]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(rest[0])
			rest = rest[1:]
		}
	}
	return b.String(), nil
}

// Resolve returns the dc:date value for a description date.
// Empty stays empty; "auto" and "auto:FORMAT" use now; literals must be W3C dates.
func Resolve(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	lower := strings.ToLower(value)
	switch {
	case lower == "auto":
		return now.Format("2006-01-02"), nil
	case strings.HasPrefix(lower, "auto:"):
		format := value[len("auto:"):]
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
		layout, err := Layout(format)
		if err != nil {
			return "", err
		}
		return now.Format(layout), nil
	}

	for _, layout := range w3cLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return value, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a W3C date (YYYY, YYYY-MM, YYYY-MM-DD) or \"auto\"", ErrInvalidDate, value)
}
