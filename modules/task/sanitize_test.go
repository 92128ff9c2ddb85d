package task

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "buy milk", "buy milk"},
		{"trims whitespace", "  buy milk  ", "buy milk"},
		{"strips angle brackets", "<script>hi</script>", "scripthi/script"},
		{"strips lone brackets", "a < b > c", "a  b  c"},
		{"empty", "", ""},
		{"only brackets", "<>", ""},
		{"caps at 1000", strings.Repeat("x", 1500), strings.Repeat("x", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"keeps order", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
		{"keeps duplicates", []string{"work", "work"}, []string{"work", "work"}},
		{"drops empty after sanitize", []string{"ok", "<>", "   ", "also"}, []string{"ok", "also"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTags(tt.tags); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeTags(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}
