// Package normalizer turns JSONX text into strictly valid JSON text.
//
// JSONX is JSON extended with two conveniences: line comments introduced by
// '#' or '//', and trailing commas before a closing '}' or ']'. The
// normalizer removes both while preserving every byte inside string
// literals, so a '#', '//', or ',' embedded in a quoted value survives
// untouched. It is purely textual: it does not validate JSON structure.
package normalizer

import "strings"

// Normalize strips line comments and trailing commas from s and trims
// surrounding whitespace. It never fails; malformed input degrades to a
// best-effort transform that the downstream decoder will reject.
// Normalize is idempotent: applying it to its own output is a no-op.
func Normalize(s string) string {
	return strings.TrimSpace(StripTrailingCommas(StripComments(s)))
}

// StripComments removes every '#...' and '//...' line comment that occurs
// outside a double-quoted string, together with the run of spaces and tabs
// immediately preceding the comment marker on that line. The terminating
// newline is kept. Markers inside string literals are preserved verbatim.
//
// The scanner carries an "inside string" flag toggled by unescaped quotes
// and an "escaped" flag set by a backslash inside a string. String state is
// dropped at a newline: JSON strings cannot legally span lines, so an
// unterminated quote never swallows the rest of the document.
func StripComments(s string) string {
	out := make([]byte, 0, len(s))
	var inString, escaped bool

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			out = append(out, c)
			escaped = false
			continue
		}

		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"', '\n':
				inString = false
			}
			out = append(out, c)
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '#' || (c == '/' && i+1 < len(s) && s[i+1] == '/'):
			out = trimTrailingBlanks(out)
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				out = append(out, '\n')
			}
		default:
			out = append(out, c)
		}
	}

	return string(out)
}

// StripTrailingCommas removes every comma, outside of string literals, that
// is not followed (ignoring whitespace) by the start of another value or
// object key. A comma is kept only when the next significant character is
// one of '{', '[', '"', '\'', '-', or a word character; this covers keys,
// string values, nested containers, numbers, and the bare words true, false
// and null. A comma before '}' or ']' is therefore dropped.
//
// No string-context tracking would strictly be needed here, because a
// trailing comma sits in structural position by definition, but the scanner
// keeps it anyway so that commas inside strings are never even inspected.
func StripTrailingCommas(s string) string {
	out := make([]byte, 0, len(s))
	var inString, escaped bool

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			out = append(out, c)
			escaped = false
			continue
		}

		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"', '\n':
				inString = false
			}
			out = append(out, c)
			continue
		}

		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == ',':
			if startsValue(s, i+1) {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}

	return string(out)
}

// startsValue reports whether the next non-whitespace character at or after
// pos begins another JSON value or object key.
func startsValue(s string, pos int) bool {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	if pos >= len(s) {
		return false
	}
	switch c := s[pos]; c {
	case '{', '[', '"', '\'', '-':
		return true
	default:
		return isWordChar(c)
	}
}

// trimTrailingBlanks drops the spaces and tabs at the end of b. Trimming
// stops at any other byte, so only the run directly before a comment marker
// on the current line is affected.
func trimTrailingBlanks(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
