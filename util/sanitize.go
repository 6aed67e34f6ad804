package util

import (
	"path/filepath"
	"slices"
	"strings"
)

// SecureFilename reduces an uploaded filename to a safe single path
// component: ASCII letters, digits, '_', '.' and '-' only, whitespace
// collapsed to '_', no leading or trailing dots or underscores. The result
// may be empty, which callers must reject.
func SecureFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// BaseName returns name without directory or extension.
func BaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasExtension reports whether name ends in one of exts, ignoring case.
// Entries in exts include the leading dot.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.Contains(exts, ext)
}
