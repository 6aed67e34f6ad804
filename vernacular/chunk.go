package vernacular

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the character budget per chunk.
const DefaultChunkSize = 20384

// SplitIntoChunks splits text on whitespace and greedily packs whole words
// into chunks. A word is added while the chunk's characters, plus one
// separator per word already in it, plus the word itself stay within size.
// Words are joined with single spaces. A word longer than size becomes a
// chunk of its own; no chunk is ever empty.
func SplitIntoChunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	var current []string
	chars := 0

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if len(current) > 0 && chars+len(current)+n > size {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			chars = 0
		}
		current = append(current, word)
		chars += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
