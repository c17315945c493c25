package text

import (
	"strings"
	"unicode"
)

const (
	// maxChunkSize is the chunk length cap in runes.
	maxChunkSize = 1000
	// overlapSize is how many runes consecutive chunks share.
	// Must stay below maxChunkSize so the cursor always advances.
	overlapSize = 100
)

// SplitIntoChunks splits text into overlapping segments of at most
// maxChunkSize runes, preferring to cut at a sentence boundary. The
// whole input is covered left to right with no gaps; consecutive chunks
// overlap by up to overlapSize runes. Empty input yields no chunks, and
// input shorter than the cap yields exactly one chunk equal to the
// trimmed input.
func SplitIntoChunks(input string) []string {
	runes := []rune(strings.TrimSpace(input))
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		// Scan backward until the cut lands just after a sentence end.
		for end > start && !sentenceBoundary(runes, end) {
			end--
		}
		if end == start {
			// No boundary in range: hard cut, may split mid-sentence.
			end = start + maxChunkSize
		}

		chunks = append(chunks, string(runes[start:end]))

		// Step back by the overlap, but never behind the previous start:
		// a boundary inside the overlap window must not stall the cursor.
		next := end - overlapSize
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// sentenceBoundary reports whether position i sits right after a
// sentence-ending punctuation mark that is followed by whitespace.
func sentenceBoundary(runes []rune, i int) bool {
	if i <= 0 || i >= len(runes) {
		return false
	}
	switch runes[i-1] {
	case '.', '!', '?', '。', '！', '？':
		return unicode.IsSpace(runes[i])
	}
	return false
}
