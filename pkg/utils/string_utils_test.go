package utils

import (
	"reflect"
	"testing"
)

func TestParseCommaDelimited(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty input", "", nil},
		{"single value", "a", []string{"a"}},
		{"multiple values", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace trimmed", " a , b ", []string{"a", "b"}},
		{"empty segments dropped", "a,,b,", []string{"a", "b"}},
		{"only separators", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommaDelimited(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseCommaDelimited(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrimSpaceSlice(t *testing.T) {
	got := TrimSpaceSlice([]string{" a ", "", "  ", "b"})
	expected := []string{"a", "b"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("TrimSpaceSlice() = %v, expected %v", got, expected)
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{"empty", "", ""},
		{"single line", "Open opens the store.", "Open opens the store."},
		{"first line only", "Open opens the store\nwith retries.", "Open opens the store"},
		{"first sentence only", "Open opens the store. It retries on failure.", "Open opens the store."},
		{"surrounding whitespace", "  Open opens the store.  \n", "Open opens the store."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstSentence(tt.doc); got != tt.expected {
				t.Errorf("FirstSentence(%q) = %q, expected %q", tt.doc, got, tt.expected)
			}
		})
	}
}
