package exec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/zoobzio/sqlchain"
)

// Bind prepares rendered SQL for a driver. Each Array parameter expands
// into a parenthesized placeholder list, (NULL) when empty, and every
// placeholder is written in the dialect's style. Placeholders inside
// quoted strings and comments are left alone. Keywords outside the
// dialect's Capabilities fail with UnsupportedFeatureError.
func Bind(d Dialect, query string, params []sqlchain.Value) (string, []any, error) {
	var out binder
	out.dialect = d
	out.Grow(len(query) + 8)
	args := make([]any, 0, len(params))
	next := 0

	for i := 0; i < len(query); {
		switch c := query[i]; c {
		case '\'', '"', '`':
			j := skipQuoted(query, i+1, c)
			out.WriteString(query[i:j])
			i = j
			continue
		case '-':
			if strings.HasPrefix(query[i:], "--") {
				j := skipLineComment(query, i+2)
				out.WriteString(query[i:j])
				i = j
				continue
			}
		case '/':
			if strings.HasPrefix(query[i:], "/*") {
				j := skipBlockComment(query, i+2)
				out.WriteString(query[i:j])
				i = j
				continue
			}
		case '?':
			if next >= len(params) {
				return "", nil, fmt.Errorf("%w: more placeholders than %d params", ErrParamMismatch, len(params))
			}
			var err error
			args, err = out.param(args, params[next])
			if err != nil {
				return "", nil, fmt.Errorf("param %d: %w", next, err)
			}
			next++
			i++
			continue
		}
		if isWordStart(query[i]) && (i == 0 || !isWordByte(query[i-1])) {
			j := i + 1
			for j < len(query) && isWordByte(query[j]) {
				j++
			}
			if err := d.checkKeyword(query[i:j]); err != nil {
				return "", nil, err
			}
			out.WriteString(query[i:j])
			i = j
			continue
		}
		out.WriteByte(query[i])
		i++
	}

	if next != len(params) {
		return "", nil, fmt.Errorf("%w: %d placeholders, %d params", ErrParamMismatch, next, len(params))
	}
	return out.String(), args, nil
}

type binder struct {
	strings.Builder
	dialect Dialect
	n       int
}

// placeholder writes the next positional placeholder.
func (b *binder) placeholder() {
	b.n++
	switch b.dialect.BindType {
	case sqlx.DOLLAR:
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(b.n))
	case sqlx.AT:
		b.WriteString("@p")
		b.WriteString(strconv.Itoa(b.n))
	case sqlx.NAMED:
		b.WriteString(":arg")
		b.WriteString(strconv.Itoa(b.n))
	default:
		b.WriteByte('?')
	}
}

func (b *binder) param(args []any, p sqlchain.Value) ([]any, error) {
	if p.Kind() != sqlchain.KindArray {
		v, err := p.Value()
		if err != nil {
			return args, err
		}
		b.placeholder()
		return append(args, v), nil
	}

	elems, _ := p.AsArray()
	if len(elems) == 0 {
		b.WriteString("(NULL)")
		return args, nil
	}
	b.WriteByte('(')
	for i, e := range elems {
		v, err := e.Value()
		if err != nil {
			return args, fmt.Errorf("array element %d: %w", i, err)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.placeholder()
		args = append(args, v)
	}
	b.WriteByte(')')
	return args, nil
}

func isWordStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isWordByte(c byte) bool {
	return isWordStart(c) || c >= '0' && c <= '9'
}

// skipQuoted returns the index after the closing quote. A doubled quote is
// an escaped quote. Unterminated strings run to the end of the query.
func skipQuoted(s string, i int, quote byte) int {
	for i < len(s) {
		if s[i] == quote {
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s)
}

func skipLineComment(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	if j := strings.Index(s[i:], "*/"); j >= 0 {
		return i + j + 2
	}
	return len(s)
}
