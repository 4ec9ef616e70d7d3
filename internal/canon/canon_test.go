package canon_test

import (
	"testing"

	"github.com/crawlfrontier/frontier/internal/canon"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "http://example.com/a", "http://(com,example,)/a"},
		{"subdomain", "http://www.example.com/a/b", "http://(com,example,www,)/a/b"},
		{"strips query and fragment", "http://example.com/a?x=1#y", "http://(com,example,)/a"},
		{"https", "https://example.com/", "https://(com,example,)/"},
		{"uppercase host lowered", "http://EXAMPLE.com/A", "http://(com,example,)/A"},
		{"unparseable", "://nope", ""},
		{"no host", "/relative/path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := canon.Canonicalize(tt.in)
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlashCount(t *testing.T) {
	t.Parallel()

	if got := canon.SlashCount("http://(com,example,)/a/b"); got != 2 {
		t.Errorf("SlashCount() = %d, want 2", got)
	}
}
