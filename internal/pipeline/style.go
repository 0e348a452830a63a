package pipeline

import (
	"errors"
	"fmt"
	"strings"

	cssparser "github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

// ErrStyleCompile indicates a stylesheet could not be compiled.
var ErrStyleCompile = errors.New("stylesheet compilation failed")

// StyleSource is a stylesheet and the name it was loaded from.
type StyleSource struct {
	Name    string
	Content string
}

// StyleCompiler compiles an authored stylesheet into plain CSS.
type StyleCompiler interface {
	Compile(src StyleSource) (string, error)
}

// LessCompiler compiles the LESS subset used by themes and books:
//
//   - // line comments are dropped,
//   - top-level "@name: value;" declarations define variables,
//   - later @name references are replaced by their value.
//
// Anything else (nesting, mixins, operations) is passed through to the CSS
// parser, which rejects what it cannot read. Plain CSS compiles to itself,
// normalized.
type LessCompiler struct{}

// Compile implements StyleCompiler.
func (LessCompiler) Compile(src StyleSource) (string, error) {
	tokens, err := lessTokens(src.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrStyleCompile, src.Name, err)
	}
	css, err := expandVariables(tokens)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrStyleCompile, src.Name, err)
	}
	sheet, err := cssparser.Parse(css)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrStyleCompile, src.Name, err)
	}
	return sheet.String(), nil
}

// lessTokens scans src, skipping // comments. The scanner has no notion of
// line comments, so scanning restarts after each one.
func lessTokens(src string) ([]*scanner.Token, error) {
	var tokens []*scanner.Token
	offset := 0
	s := scanner.New(src)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return tokens, nil
		case scanner.TokenError:
			return nil, fmt.Errorf("line %d: %s", tok.Line, tok.Value)
		case scanner.TokenBOM:
			offset += len(tok.Value)
			continue
		}
		if tok.Type == scanner.TokenChar && tok.Value == "/" && strings.HasPrefix(src[offset:], "//") {
			nl := strings.IndexByte(src[offset:], '\n')
			if nl < 0 {
				return tokens, nil
			}
			offset += nl
			s = scanner.New(src[offset:])
			continue
		}
		offset += len(tok.Value)
		tokens = append(tokens, tok)
	}
}

func isChar(tok *scanner.Token, c string) bool {
	return tok.Type == scanner.TokenChar && tok.Value == c
}

// expandVariables records top-level variable declarations and substitutes
// references. An unknown @name inside a block is an error; at the top level
// it is an at-rule (@media, @font-face) and is kept.
func expandVariables(tokens []*scanner.Token) (string, error) {
	vars := make(map[string]string)
	var out strings.Builder
	depth := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Type == scanner.TokenAtKeyword:
			name := tok.Value[1:]
			if depth == 0 {
				j := i + 1
				for j < len(tokens) && tokens[j].Type == scanner.TokenS {
					j++
				}
				if j < len(tokens) && isChar(tokens[j], ":") {
					end := j + 1
					for end < len(tokens) && !isChar(tokens[end], ";") {
						end++
					}
					if end == len(tokens) {
						return "", fmt.Errorf("line %d: variable @%s is not terminated by ';'", tok.Line, name)
					}
					value, err := substitute(tokens[j+1:end], vars)
					if err != nil {
						return "", err
					}
					vars[name] = strings.TrimSpace(value)
					i = end
					continue
				}
			}
			if v, ok := vars[name]; ok {
				out.WriteString(v)
				continue
			}
			if depth > 0 {
				return "", fmt.Errorf("line %d: undefined variable @%s", tok.Line, name)
			}
			out.WriteString(tok.Value)
		case isChar(tok, "{"):
			depth++
			out.WriteString(tok.Value)
		case isChar(tok, "}"):
			depth--
			out.WriteString(tok.Value)
		default:
			out.WriteString(tok.Value)
		}
	}
	return out.String(), nil
}

func substitute(tokens []*scanner.Token, vars map[string]string) (string, error) {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.Type != scanner.TokenAtKeyword {
			b.WriteString(tok.Value)
			continue
		}
		v, ok := vars[tok.Value[1:]]
		if !ok {
			return "", fmt.Errorf("line %d: undefined variable %s", tok.Line, tok.Value)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// MergeStyles compiles the theme stylesheet, then the book stylesheet when
// one is given (non-empty Name), and joins them theme first so book rules win
// the cascade.
func MergeStyles(c StyleCompiler, theme StyleSource, book StyleSource) (string, error) {
	merged, err := c.Compile(theme)
	if err != nil {
		return "", err
	}
	if book.Name == "" {
		return merged + "\n", nil
	}
	override, err := c.Compile(book)
	if err != nil {
		return "", err
	}
	return merged + "\n" + override + "\n", nil
}

// Compile-time interface check.
var _ StyleCompiler = LessCompiler{}
