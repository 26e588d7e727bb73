// Package decoder turns normalized JSON text into a generic value tree.
//
// It wraps encoding/json's token stream rather than calling Unmarshal
// directly, because two session options are not expressible through
// Unmarshal: a configurable maximum nesting depth, and an ordered
// (non-associative) object representation.
package decoder

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/jsonx/internal/errors"
	"github.com/mcncl/jsonx/internal/models"
)

// DefaultMaxDepth is the nesting depth limit applied when none is configured.
const DefaultMaxDepth = 512

// Flags is a bitset of optional decoder behaviors.
type Flags uint

const (
	// FlagUseNumber keeps numbers as json.Number instead of converting
	// them to float64.
	FlagUseNumber Flags = 1 << iota
	// FlagRejectDuplicateKeys fails the decode when an object repeats a key.
	FlagRejectDuplicateKeys
)

// Has reports whether flag is set in f.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Options configures a decode.
type Options struct {
	// Associative selects map-form objects (models.JSONObject). When false,
	// objects decode to models.JSONMembers with document order preserved.
	Associative bool
	// MaxDepth is the maximum container nesting depth; must be at least 1.
	MaxDepth int
	// Flags holds optional decoder behaviors.
	Flags Flags
}

// DefaultOptions returns the default decode configuration.
func DefaultOptions() Options {
	return Options{Associative: true, MaxDepth: DefaultMaxDepth}
}

// Decode parses text as a single JSON value. Malformed syntax, trailing
// data after the first value, and nesting beyond opts.MaxDepth all fail
// with a decode error naming the configured depth limit.
func Decode(text string, opts Options) (models.JSONValue, error) {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, decodeError(opts, err)
	}
	value, err := readValue(dec, tok, opts, 1)
	if err != nil {
		return nil, err
	}

	// A second top-level value is not valid JSON.
	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeError(opts, fmt.Errorf("trailing data after first value"))
	}

	return value, nil
}

// readValue builds the value introduced by tok. depth is the nesting level
// the value occupies when it is a container: 1 for a top-level object or
// array, 2 for a container directly inside it, and so on.
func readValue(dec *json.Decoder, tok json.Token, opts Options, depth int) (models.JSONValue, error) {
	switch t := tok.(type) {
	case json.Delim:
		if depth > opts.MaxDepth {
			return nil, decodeError(opts, fmt.Errorf("nesting exceeds %d", opts.MaxDepth))
		}
		switch t {
		case '{':
			return readObject(dec, opts, depth)
		case '[':
			return readArray(dec, opts, depth)
		}
		return nil, decodeError(opts, fmt.Errorf("unexpected delimiter %q", t.String()))
	case json.Number:
		if opts.Flags.Has(FlagUseNumber) {
			return t, nil
		}
		f, err := t.Float64()
		if err != nil {
			// Out-of-range literal; keep the exact textual form.
			return t, nil
		}
		return f, nil
	default:
		// string, bool, or nil
		return t, nil
	}
}

// readObject consumes members up to and including the closing '}'.
func readObject(dec *json.Decoder, opts Options, depth int) (models.JSONValue, error) {
	var (
		obj     models.JSONObject
		members models.JSONMembers
		seen    map[string]struct{}
	)
	if opts.Associative {
		obj = models.JSONObject{}
	}
	if opts.Flags.Has(FlagRejectDuplicateKeys) {
		seen = map[string]struct{}{}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, decodeError(opts, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, decodeError(opts, fmt.Errorf("object key is not a string: %v", keyTok))
		}
		if seen != nil {
			if _, dup := seen[key]; dup {
				return nil, decodeError(opts, fmt.Errorf("duplicate object key %q", key))
			}
			seen[key] = struct{}{}
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, decodeError(opts, err)
		}
		value, err := readValue(dec, valTok, opts, depth+1)
		if err != nil {
			return nil, err
		}

		if opts.Associative {
			obj[key] = value
		} else {
			members = append(members, models.JSONMember{Key: key, Value: value})
		}
	}

	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, decodeError(opts, err)
	}

	if opts.Associative {
		return obj, nil
	}
	if members == nil {
		members = models.JSONMembers{}
	}
	return members, nil
}

// readArray consumes elements up to and including the closing ']'.
func readArray(dec *json.Decoder, opts Options, depth int) (models.JSONValue, error) {
	arr := models.JSONArray{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, decodeError(opts, err)
		}
		value, err := readValue(dec, tok, opts, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, decodeError(opts, err)
	}

	return arr, nil
}

func decodeError(opts Options, err error) error {
	return errors.NewDecodeError(
		fmt.Sprintf("text cannot be decoded or nesting exceeds %d", opts.MaxDepth),
		err,
	)
}
