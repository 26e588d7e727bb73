package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonx/internal/decoder"
	apperrors "github.com/mcncl/jsonx/internal/errors"
	"github.com/mcncl/jsonx/internal/models"
)

const sample = `# sample config
{
	"name": "billing", // service name
	"port": 8080,
	"endpoints": [
		"/healthz",
		"/metrics", // scraped
	],
}`

const sampleNormalized = `{
	"name": "billing",
	"port": 8080,
	"endpoints": [
		"/healthz",
		"/metrics"
	]
}`

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	return path
}

func TestFromString_ClearsOrigin(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "service.jsonx")

	sess := New()
	require.NoError(t, sess.FromFile(path))
	assert.NotEmpty(t, sess.Origin())

	sess.FromString(`{"a": 1}`)
	assert.Empty(t, sess.Origin())
	assert.Equal(t, `{"a": 1}`, sess.Source())
}

func TestFromFile_RecordsAbsoluteOrigin(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "service.jsonx")

	sess := New()
	require.NoError(t, sess.FromFile(path))
	assert.Equal(t, sample, sess.Source())
	assert.True(t, filepath.IsAbs(sess.Origin()))
}

func TestFromFile_NonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jsonx")

	err := New().FromFile(path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeFile, appErr.Type)
	assert.Equal(t, path, appErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestFromFile_NotRegularFile(t *testing.T) {
	dir := t.TempDir()

	err := New().FromFile(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotRegularFile))
}

func TestToJSON_NormalizesInPlace(t *testing.T) {
	sess := New().FromString(sample)

	got := sess.ToJSON()
	assert.Equal(t, sampleNormalized, got)
	// SourceText is mutated, not just returned.
	assert.Equal(t, sampleNormalized, sess.Source())
}

func TestDecode_EmptySource(t *testing.T) {
	_, err := New().Decode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmptySource))

	_, err = New().FromString("   \n\t").Decode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmptySource))
}

func TestDecode_CommentOnlySource(t *testing.T) {
	// Comment-only input passes the empty-source check but normalizes to
	// nothing, so the decoder rejects it.
	_, err := New().FromString("# just a comment\n").Decode()
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeDecode, appErr.Type)
}

func TestDecode_Sample(t *testing.T) {
	value, err := New().FromString(sample).Decode()
	require.NoError(t, err)

	expected := models.JSONObject{
		"name": "billing",
		"port": float64(8080),
		"endpoints": models.JSONArray{
			"/healthz",
			"/metrics",
		},
	}
	assert.Equal(t, expected, value)
}

func TestDecodeText_RoundTrip(t *testing.T) {
	// Strict JSON and its annotated JSONX form decode to the same tree.
	strict := `{"a": 1, "b": [1, 2, 3]}`
	annotated := "{\"a\": 1, // first\n\"b\": [1, 2, 3,], # list\n}"

	sess := New()
	fromStrict, err := sess.DecodeText(strict)
	require.NoError(t, err)
	fromAnnotated, err := sess.DecodeText(annotated)
	require.NoError(t, err)

	assert.Equal(t, fromStrict, fromAnnotated)
}

func TestDecodeFile(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "service.jsonx")

	value, err := New().DecodeFile(path)
	require.NoError(t, err)

	obj, ok := value.(models.JSONObject)
	require.True(t, ok)
	assert.Equal(t, "billing", obj["name"])
}

func TestDecode_DepthLimitPropagates(t *testing.T) {
	_, err := New().MaxDepth(2).DecodeText(`{"a": [[1]]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting exceeds 2")
}

func TestWriteJSON_DerivedTarget(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "service.jsonx")

	sess := New()
	require.NoError(t, sess.FromFile(path))

	n, err := sess.WriteJSON("")
	require.NoError(t, err)
	assert.Equal(t, len(sampleNormalized), n)

	written, err := os.ReadFile(filepath.Join(tempDir, "service.json"))
	require.NoError(t, err)
	assert.Equal(t, sampleNormalized, string(written))
}

func TestWriteJSON_ExplicitTarget(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "out.json")

	sess := New().FromString(`{"a": 1,}`)
	n, err := sess.WriteJSON(target)
	require.NoError(t, err)
	assert.Equal(t, len(`{"a": 1}`), n)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, string(written))
}

func TestWriteJSON_NoOriginNoTarget(t *testing.T) {
	_, err := New().FromString(`{"a": 1}`).WriteJSON("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTargetUndefined))
}

func TestWriteJSON_TargetExists(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "out.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	sess := New().FromString(`{"a": 1}`)

	_, err := sess.WriteJSON(target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTargetExists))

	// The existing content is untouched after the refusal.
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	// Overwrite unlocks the write.
	n, err := sess.Overwrite(true).WriteJSON(target)
	require.NoError(t, err)
	assert.Equal(t, len(`{"a": 1}`), n)
}

func TestWriteJSON_TargetIsDirectory(t *testing.T) {
	tempDir := t.TempDir()

	_, err := New().FromString(`{"a": 1}`).Overwrite(true).WriteJSON(tempDir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotRegularFile))
}

func TestTranslateFile(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "a.jsonx")

	n, err := New().TranslateFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, len(sampleNormalized), n)

	written, err := os.ReadFile(filepath.Join(tempDir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, sampleNormalized, string(written))
}

func TestTranslateFile_MissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jsonx")

	_, err := New().TranslateFile(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestTargetPath_Derivation(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "jsonx extension", source: "service.jsonx", want: "service.json"},
		{name: "single-char extension", source: "service.x", want: "service.json"},
		{name: "no extension", source: "service", want: "service.json"},
		{name: "dotted directory stays intact", source: "v1.2/service.jsonx", want: "service.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "v1.2"), 0755))
			path := filepath.Join(tempDir, tt.source)
			require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

			sess := New()
			require.NoError(t, sess.FromFile(path))

			target, err := sess.TargetPath("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Base(target))
			assert.Equal(t, filepath.Dir(sess.Origin()), filepath.Dir(target))
		})
	}
}

func TestTargetPath_ExplicitWins(t *testing.T) {
	target, err := New().TargetPath("given.json")
	require.NoError(t, err)
	assert.Equal(t, "given.json", target)
}

func TestSetters_Chain(t *testing.T) {
	sess := New().
		Associative(false).
		MaxDepth(16).
		Flags(decoder.FlagUseNumber).
		Overwrite(true).
		Extension("out")

	opts := sess.Options()
	assert.False(t, opts.Associative)
	assert.Equal(t, 16, opts.MaxDepth)
	assert.True(t, opts.Flags.Has(decoder.FlagUseNumber))
}

func TestMaxDepth_ClampedToOne(t *testing.T) {
	assert.Equal(t, 1, New().MaxDepth(0).Options().MaxDepth)
	assert.Equal(t, 1, New().MaxDepth(-5).Options().MaxDepth)
	assert.Equal(t, decoder.DefaultMaxDepth, New().Options().MaxDepth)
}

func TestExtension_CustomDerivation(t *testing.T) {
	tempDir := t.TempDir()
	path := writeSample(t, tempDir, "service.jsonx")

	sess := New().Extension(".out")
	require.NoError(t, sess.FromFile(path))

	target, err := sess.TargetPath("")
	require.NoError(t, err)
	assert.Equal(t, "service.out", filepath.Base(target))
}
