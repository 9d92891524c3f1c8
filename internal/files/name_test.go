package files

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"very_long_file_name.txt", "very_lo...me.txt"},
		{"very_long_file_name", "very_lo...me"},
		{"a_very_long_filename_indeed.png", "a_very_...ed.png"},
		{"name.txt", "name.txt"},
		{"name", "name"},
		{"exactly_15_char.md", "exactly_15_char.md"},
		{"sixteen_chars_ab.md", "sixteen...ab.md"},
		{".bashrc", ".bashrc"},
		{"ünïcödé_fïlé_nämé_long.txt", "ünïcödé...ng.txt"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			orig, got := FormatDisplayName(tc.in)
			if orig != tc.in {
				t.Fatalf("original changed: %q", orig)
			}
			if got != tc.want {
				t.Fatalf("FormatDisplayName(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("invalid utf-8 in %q", got)
			}
		})
	}
}

func TestFormatDisplayNameShape(t *testing.T) {
	for n := 16; n < 40; n++ {
		stem := strings.Repeat("x", n-2) + "yz"
		name := stem + ".ogg"
		_, got := FormatDisplayName(name)
		want := name[:7] + "...yz.ogg"
		if got != want {
			t.Fatalf("stem len %d: got %q want %q", n, got, want)
		}
		if len(got) >= len(name) {
			t.Fatalf("stem len %d: expected shorter label, got %q", n, got)
		}
	}
}

func TestIsVideo(t *testing.T) {
	for _, ext := range VideoExtensions {
		if !IsVideo("clip" + ext) {
			t.Fatalf("expected %s to be video", ext)
		}
		if !IsVideo("CLIP" + strings.ToUpper(ext)) {
			t.Fatalf("expected upper-case %s to be video", ext)
		}
	}
	for _, name := range []string{"clip", "clip.txt", "clip.mp3", "mp4", ".mp4", "clip.mp4.txt", ""} {
		if IsVideo(name) {
			t.Fatalf("expected %q not to be video", name)
		}
	}
}
