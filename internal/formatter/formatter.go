package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mcncl/jsonx/internal/errors"
)

// DefaultIndent is the indentation used by Format when none is configured.
const DefaultIndent = "  "

// Formatter re-renders normalized JSON text for output. It is cosmetic
// only: it runs after normalization and never changes value content.
type Formatter struct {
	indent string
}

// NewFormatter creates a Formatter using DefaultIndent.
func NewFormatter() *Formatter {
	return &Formatter{indent: DefaultIndent}
}

// WithIndent sets the indentation string used by Format.
func (f *Formatter) WithIndent(indent string) *Formatter {
	f.indent = indent
	return f
}

// Format re-indents JSON text. The input must already be valid JSON.
func (f *Formatter) Format(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", f.indent); err != nil {
		return "", errors.NewOutputError("failed to indent JSON output", err)
	}
	return buf.String(), nil
}

// Compact removes insignificant whitespace from JSON text.
func (f *Formatter) Compact(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return "", errors.NewOutputError("failed to compact JSON output", err)
	}
	return buf.String(), nil
}
