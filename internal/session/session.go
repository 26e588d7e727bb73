// Package session sequences the load, normalize, decode, and write
// workflows over one in-memory JSONX source.
//
// Each Session owns its own source text and options; nothing is process
// global. A Session has no internal locking, so callers sharing one across
// goroutines must serialize access.
package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsonx/internal/decoder"
	"github.com/mcncl/jsonx/internal/errors"
	"github.com/mcncl/jsonx/internal/models"
	"github.com/mcncl/jsonx/internal/normalizer"
)

// DefaultExtension is the extension written when deriving a target path.
const DefaultExtension = "json"

// Session holds the currently loaded source text, the file path it came
// from (if any), and the decode/write options.
type Session struct {
	source    string
	origin    string // absolute path of the loaded file, empty for string sources
	opts      decoder.Options
	overwrite bool
	extension string
}

// New creates a Session with default options: associative decoding,
// a nesting depth limit of 512, no flags, and overwrite disabled.
func New() *Session {
	return &Session{opts: decoder.DefaultOptions(), extension: DefaultExtension}
}

// FromString replaces the source text with text and clears the origin.
func (s *Session) FromString(text string) *Session {
	s.source = text
	s.origin = ""
	return s
}

// FromFile loads the full content of path into the session and records the
// resolved absolute path as the origin. The path must name an existing,
// regular, readable file.
func (s *Session) FromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError(path, "source file does not exist", err)
		}
		return errors.NewFileError(path, "source file cannot be accessed", err)
	}
	if !info.Mode().IsRegular() {
		return errors.NewFileError(path, "source is not a regular file", errors.ErrNotRegularFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewFileError(path, "source file is not readable", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.NewFileError(path, "source path cannot be resolved", err)
	}

	s.source = string(data)
	s.origin = abs
	return nil
}

// ToJSON normalizes the source text in place and returns it. Normalization
// strips line comments and trailing commas and trims surrounding
// whitespace; it never fails.
func (s *Session) ToJSON() string {
	s.source = normalizer.Normalize(s.source)
	return s.source
}

// Decode normalizes the source text and parses it into a value tree using
// the session's decode options. It fails with an empty-source error before
// normalizing when no source is loaded, and with a decode error when the
// normalized text is not valid JSON or exceeds the depth limit.
func (s *Session) Decode() (models.JSONValue, error) {
	if strings.TrimSpace(s.source) == "" {
		return nil, errors.NewEmptySourceError()
	}
	return decoder.Decode(s.ToJSON(), s.opts)
}

// DecodeText loads text into the session and decodes it. The origin is
// cleared, as with FromString.
func (s *Session) DecodeText(text string) (models.JSONValue, error) {
	return s.FromString(text).Decode()
}

// DecodeFile loads path into the session and decodes it.
func (s *Session) DecodeFile(path string) (models.JSONValue, error) {
	if err := s.FromFile(path); err != nil {
		return nil, err
	}
	return s.Decode()
}

// WriteJSON normalizes the source text and writes it to target, returning
// the number of bytes written. An empty target derives the path from the
// origin by replacing its extension with ".json"; this fails when the
// session has no origin. An existing target is refused unless overwrite is
// enabled, and even then it must be a regular file.
func (s *Session) WriteJSON(target string) (int, error) {
	text := s.ToJSON()

	path, err := s.resolveTarget(target)
	if err != nil {
		return 0, err
	}

	if info, err := os.Stat(path); err == nil {
		if !s.overwrite {
			return 0, errors.NewFileError(path, "target already exists", errors.ErrTargetExists)
		}
		if !info.Mode().IsRegular() {
			return 0, errors.NewFileError(path, "target is not a regular file", errors.ErrNotRegularFile)
		}
	} else if !os.IsNotExist(err) {
		return 0, errors.NewFileError(path, "target cannot be accessed", err)
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return 0, errors.NewFileError(path, "target is not writable", err)
	}
	return len(text), nil
}

// TranslateFile loads source and writes its normalized form, deriving the
// target path from source when target is empty.
func (s *Session) TranslateFile(source, target string) (int, error) {
	if err := s.FromFile(source); err != nil {
		return 0, err
	}
	return s.WriteJSON(target)
}

// Associative selects between map-form objects (true) and ordered member
// lists (false) for decoded values.
func (s *Session) Associative(v bool) *Session {
	s.opts.Associative = v
	return s
}

// MaxDepth sets the decode nesting depth limit. Values below 1 are raised
// to 1.
func (s *Session) MaxDepth(depth int) *Session {
	if depth < 1 {
		depth = 1
	}
	s.opts.MaxDepth = depth
	return s
}

// Flags sets the decoder flag bitset.
func (s *Session) Flags(flags decoder.Flags) *Session {
	s.opts.Flags = flags
	return s
}

// Overwrite controls whether WriteJSON may replace an existing target.
func (s *Session) Overwrite(v bool) *Session {
	s.overwrite = v
	return s
}

// Extension sets the extension used when deriving a target path. An empty
// value restores DefaultExtension.
func (s *Session) Extension(ext string) *Session {
	if ext == "" {
		ext = DefaultExtension
	}
	s.extension = strings.TrimPrefix(ext, ".")
	return s
}

// Source returns the current source text.
func (s *Session) Source() string {
	return s.source
}

// Origin returns the absolute path the source was loaded from, or "" when
// the source came from a string.
func (s *Session) Origin() string {
	return s.origin
}

// Options returns the current decode options.
func (s *Session) Options() decoder.Options {
	return s.opts
}

// TargetPath resolves the path WriteJSON would write to: target itself when
// non-empty, otherwise the origin with its extension replaced. Fails when
// target is empty and the session has no origin.
func (s *Session) TargetPath(target string) (string, error) {
	return s.resolveTarget(target)
}

func (s *Session) resolveTarget(target string) (string, error) {
	if target != "" {
		return target, nil
	}
	if s.origin == "" {
		return "", errors.NewFileError("", "target file undefined", errors.ErrTargetUndefined)
	}
	return replaceExtension(s.origin, s.extension), nil
}

// replaceExtension swaps everything from the final dot of the last path
// element with ext, or appends ext when the name has no extension.
func replaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
