package formatter

import (
	"testing"
)

func TestFormat(t *testing.T) {
	input := `{"a":1,"b":[1,2]}`
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}"

	got, err := NewFormatter().Format(input)
	if err != nil {
		t.Fatalf("Format() error = %v, wantErr nil", err)
	}
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_CustomIndent(t *testing.T) {
	input := `{"a":1}`
	want := "{\n\t\"a\": 1\n}"

	got, err := NewFormatter().WithIndent("\t").Format(input)
	if err != nil {
		t.Fatalf("Format() error = %v, wantErr nil", err)
	}
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestCompact(t *testing.T) {
	input := "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}"
	want := `{"a":1,"b":[1,2]}`

	got, err := NewFormatter().Compact(input)
	if err != nil {
		t.Fatalf("Compact() error = %v, wantErr nil", err)
	}
	if got != want {
		t.Errorf("Compact() = %q, want %q", got, want)
	}
}

func TestFormat_EmptyInput(t *testing.T) {
	got, err := NewFormatter().Format("  \n ")
	if err != nil {
		t.Fatalf("Format() error = %v, wantErr nil", err)
	}
	if got != "" {
		t.Errorf("Format() = %q, want empty", got)
	}
}

func TestFormat_InvalidJSON(t *testing.T) {
	if _, err := NewFormatter().Format(`{"a":`); err == nil {
		t.Errorf("Format() of invalid JSON succeeded, want error")
	}
	if _, err := NewFormatter().Compact(`{"a":`); err == nil {
		t.Errorf("Compact() of invalid JSON succeeded, want error")
	}
}
