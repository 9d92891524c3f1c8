// Package files renders file attachments: a compact label, a video marker
// and an optional inline rename field.
package files

import (
	"path/filepath"
	"strings"
)

const maxStemLen = 15

// VideoExtensions lists the extensions treated as playable video.
var VideoExtensions = []string{".mp4", ".mov", ".mkv", ".avi", ".flv", ".wmv", ".m4v", ".3gp"}

// FormatDisplayName returns the name unchanged alongside its display form.
// A stem longer than 15 characters is shortened to the first seven
// characters of the name, an ellipsis, the last two characters of the stem
// and the extension.
func FormatDisplayName(name string) (string, string) {
	stem, ext := splitName(name)
	stemRunes := []rune(stem)
	if len(stemRunes) <= maxStemLen {
		return name, name
	}
	nameRunes := []rune(name)
	return name, string(nameRunes[:7]) + "..." + string(stemRunes[len(stemRunes)-2:]) + ext
}

// IsVideo reports whether name carries a known video extension, ignoring case.
func IsVideo(name string) bool {
	_, ext := splitName(name)
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// splitName separates the stem and extension of the last path element. A
// leading dot starts a hidden name, not an extension.
func splitName(name string) (string, string) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "", ""
	}
	ext := filepath.Ext(base)
	if ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}
